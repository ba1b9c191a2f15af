package dtl

import (
	"fmt"
	"strings"
)

//TreeNode is a node of a tree. Tree is stored in an array. TrueIndex and FalseIndex are equal to -1
//when the current node is a leaf otherwise they contain array indices of children.
//A leaf node contains LeafIndex that is an index of the LeafNodes array.
type TreeNode struct {
	TreeNodeId            int
	Question              Question
	TrueIndex, FalseIndex int // -1, -1 if it is a leaf
	LeafIndex             int // -1 if it is a non-leaf tree node
	NumberOfRows          int
	Impurity              float64
	Gain                  float64
	Depth                 int
}

func NewTreeNode() TreeNode {
	return TreeNode{TrueIndex: -1, FalseIndex: -1, LeafIndex: -1}
}

//IsLeaf returns whether this node is a LeafNode.
func (node TreeNode) IsLeaf() bool {
	return node.LeafIndex != -1
}

//GraphDescription returns the description of a tree node for tree rendering as a graph
func (node TreeNode) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln(node.Question))
	sb.WriteString(fmt.Sprintln("#", node.NumberOfRows))
	sb.WriteString(fmt.Sprintf("gini: %6.4f", node.Impurity))
	return sb.String()
}

//LeafNode stores the labels of the training rows that reached a leaf, in order of first occurrence, with their counts.
type LeafNode struct {
	LeafNodeId   int
	Labels       []string
	Counts       []int
	NumberOfRows int
}

//NewLeafNode counts labels of rows.
func NewLeafNode(rows []Row) LeafNode {
	labels, counts := LabelCounts(rows)
	return LeafNode{LeafNodeId: -1, Labels: labels, Counts: counts, NumberOfRows: len(rows)}
}

//GraphDescription returns the description of a leaf node for tree rendering as a graph
func (leaf LeafNode) GraphDescription() string {
	var sb strings.Builder
	for ind, label := range leaf.Labels {
		sb.WriteString(fmt.Sprintf("%s: %d\n", label, leaf.Counts[ind]))
	}
	sb.WriteString(fmt.Sprint("# ", leaf.NumberOfRows))
	return sb.String()
}

//TraceEvent describes a node just created by the tree builder.
//Split.Question is nil for leaves, Leaf is nil for decision nodes.
type TraceEvent struct {
	TreeNodeId int
	Depth      int
	Split      BestSplit
	Leaf       *LeafNode
}

//TraceFunc receives an event for every node built.
type TraceFunc func(TraceEvent)

//Option configures BuildTree.
type Option func(*buildParams)

type buildParams struct {
	trace TraceFunc
}

//WithTrace installs a callback called for every node of the tree being built.
func WithTrace(trace TraceFunc) Option {
	return func(params *buildParams) { params.trace = trace }
}

//Tree is a trained decision tree. The root is TreeNodes[0]. A tree is never modified after BuildTree
//returns, so it can be shared between goroutines.
type Tree struct {
	Headers   []string
	Kinds     []Kind
	TreeNodes []TreeNode
	LeafNodes []LeafNode
}

//BuildTree grows a tree on the whole dataset. A node becomes a leaf only when no question
//has a positive information gain on its rows.
func BuildTree(dataset *Dataset, opts ...Option) (*Tree, error) {
	if dataset == nil || dataset.Height() == 0 {
		return nil, ErrEmptyRows
	}
	var params buildParams
	for _, opt := range opts {
		opt(&params)
	}

	tree := &Tree{
		Headers:   dataset.Headers(),
		Kinds:     append([]Kind(nil), dataset.kinds...),
		TreeNodes: make([]TreeNode, 0),
		LeafNodes: make([]LeafNode, 0),
	}
	if _, err := tree.buildTree(dataset.Rows(), 0, params); err != nil {
		return nil, err
	}
	return tree, nil
}

//Train is BuildTree without options.
func Train(dataset *Dataset) (*Tree, error) {
	return BuildTree(dataset)
}

//buildTree recurrently builds a tree node and returns its index.
func (tree *Tree) buildTree(rows []Row, depth int, params buildParams) (int, error) {
	bestSplit, err := TheBestSplit(rows, tree.Headers)
	if err != nil {
		return -1, err
	}

	treeNodeId := len(tree.TreeNodes)
	currentTreeNode := NewTreeNode()
	currentTreeNode.TreeNodeId = treeNodeId
	currentTreeNode.NumberOfRows = bestSplit.NumberOfRows
	currentTreeNode.Impurity = bestSplit.CurrentImpurity
	currentTreeNode.Depth = depth
	tree.TreeNodes = append(tree.TreeNodes, currentTreeNode)

	if bestSplit.IsLeaf() {
		leaf := NewLeafNode(rows)
		leaf.LeafNodeId = len(tree.LeafNodes)
		tree.LeafNodes = append(tree.LeafNodes, leaf)
		tree.TreeNodes[treeNodeId].LeafIndex = leaf.LeafNodeId
		if params.trace != nil {
			params.trace(TraceEvent{TreeNodeId: treeNodeId, Depth: depth, Split: bestSplit, Leaf: &leaf})
		}
		return treeNodeId, nil
	}

	tree.TreeNodes[treeNodeId].Question = *bestSplit.Question
	tree.TreeNodes[treeNodeId].Gain = bestSplit.Gain
	if params.trace != nil {
		params.trace(TraceEvent{TreeNodeId: treeNodeId, Depth: depth, Split: bestSplit})
	}

	trueRows, falseRows, err := Partition(rows, *bestSplit.Question)
	if err != nil {
		return -1, err
	}

	trueNodeId, err := tree.buildTree(trueRows, depth+1, params)
	if err != nil {
		return -1, err
	}
	tree.TreeNodes[treeNodeId].TrueIndex = trueNodeId

	falseNodeId, err := tree.buildTree(falseRows, depth+1, params)
	if err != nil {
		return -1, err
	}
	tree.TreeNodes[treeNodeId].FalseIndex = falseNodeId

	return treeNodeId, nil
}

//FeatureCount is the number of features a vector must have to be classified.
func (tree *Tree) FeatureCount() int {
	return len(tree.Headers)
}

//Depth returns the length of the longest path from the root to a leaf.
func (tree *Tree) Depth() int {
	depth := 0
	for _, node := range tree.TreeNodes {
		if node.Depth > depth {
			depth = node.Depth
		}
	}
	return depth
}
