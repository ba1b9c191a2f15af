package dtl

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

var figureFormats = map[string]graphviz.Format{
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

func figureFormat(figureType string) (graphviz.Format, error) {
	format, ok := figureFormats[figureType]
	if !ok {
		var zero graphviz.Format
		return zero, fmt.Errorf("%w: %q", ErrUnknownFormat, figureType)
	}
	return format, nil
}

//GetLeafDescription returns the description of a leaf node
func (tree *Tree) GetLeafDescription(ind int) string {
	return tree.LeafNodes[tree.TreeNodes[ind].LeafIndex].GraphDescription()
}

//GetNodeDescription returns the description of a decision node
func (tree *Tree) GetNodeDescription(ind int) string {
	return tree.TreeNodes[ind].GraphDescription()
}

func recurrentDraw(g *cgraph.Graph, tree *Tree, nodeNumber int, parentNode *cgraph.Node, edgeLabel string) error {
	currentNode, err := g.CreateNode(fmt.Sprint(tree.TreeNodes[nodeNumber].TreeNodeId))
	if err != nil {
		return err
	}

	if parentNode != nil {
		edge, err := g.CreateEdge(edgeLabel, parentNode, currentNode)
		if err != nil {
			return err
		}
		edge.SetLabel(edgeLabel)
	}

	if tree.TreeNodes[nodeNumber].IsLeaf() {
		currentNode.SetLabel(tree.GetLeafDescription(nodeNumber))
		currentNode.SetShape(cgraph.BoxShape)
		return nil
	}

	currentNode.SetLabel(tree.GetNodeDescription(nodeNumber))
	if err := recurrentDraw(g, tree, tree.TreeNodes[nodeNumber].TrueIndex, currentNode, "true"); err != nil {
		return err
	}
	return recurrentDraw(g, tree, tree.TreeNodes[nodeNumber].FalseIndex, currentNode, "false")
}

//DrawGraph builds a graphviz graph of the tree. The caller closes both returned objects.
func (tree *Tree) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		graphViz.Close()
		return nil, nil, err
	}

	if len(tree.TreeNodes) > 0 {
		if err := recurrentDraw(graph, tree, 0, nil, ""); err != nil {
			graph.Close()
			graphViz.Close()
			return nil, nil, err
		}
	}
	return graphViz, graph, nil
}

//Render writes a picture of the tree in one of the formats png, svg, jpg or dot.
func (tree *Tree) Render(w io.Writer, figureType string) error {
	format, err := figureFormat(figureType)
	if err != nil {
		return err
	}
	graphViz, graph, err := tree.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		graphViz.Close()
	}()

	return graphViz.Render(graph, format, w)
}

//RenderFile writes a picture of the tree into a file.
func (tree *Tree) RenderFile(fileName, figureType string) error {
	format, err := figureFormat(figureType)
	if err != nil {
		return err
	}
	graphViz, graph, err := tree.DrawGraph()
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		graphViz.Close()
	}()

	return graphViz.RenderFilename(graph, format, fileName)
}
