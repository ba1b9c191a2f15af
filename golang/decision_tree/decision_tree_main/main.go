package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tarstars/decision_classifier/golang/decision_tree/dtl"
	"gopkg.in/yaml.v3"
)

func handleError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

//decodeConfig reads a json config, or a yaml one when the file name ends with .yaml or .yml.
func decodeConfig(srcConfig string, out interface{}) error {
	file, err := os.Open(srcConfig)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(srcConfig)) {
	case ".yaml", ".yml":
		return yaml.NewDecoder(file).Decode(out)
	default:
		return json.NewDecoder(file).Decode(out)
	}
}

//DatasetConfig points to a training or test table: either a csv file or a pair of npy files.
type DatasetConfig struct {
	FileNameCSV      string   `json:"filename_csv" yaml:"filename_csv"`
	FileNameFeatures string   `json:"filename_features" yaml:"filename_features"`
	FileNameTarget   string   `json:"filename_target" yaml:"filename_target"`
	Headers          []string `json:"headers" yaml:"headers"`
}

func (config DatasetConfig) load() (*dtl.Dataset, error) {
	if config.FileNameCSV != "" {
		log.WithField("file", config.FileNameCSV).Info("load csv dataset")
		return dtl.LoadCSVDataset(config.FileNameCSV)
	}
	if config.FileNameFeatures != "" && config.FileNameTarget != "" {
		log.WithFields(log.Fields{
			"features": config.FileNameFeatures,
			"target":   config.FileNameTarget,
		}).Info("load npy dataset")
		return dtl.LoadNpyDataset(config.FileNameFeatures, config.FileNameTarget, config.Headers)
	}
	return nil, fmt.Errorf("%w: neither filename_csv nor filename_features/filename_target are set", dtl.ErrMalformedDataset)
}

type ClassifyConfig struct {
	Train    DatasetConfig `json:"train" yaml:"train"`
	Features [][]string    `json:"features" yaml:"features"`
}

type EvaluateConfig struct {
	Train      DatasetConfig `json:"train" yaml:"train"`
	Test       DatasetConfig `json:"test" yaml:"test"`
	ThreadsNum int           `json:"threads_num" yaml:"threads_num"`
}

type GraphConfig struct {
	Train         DatasetConfig `json:"train" yaml:"train"`
	FileNameGraph string        `json:"filename_graph" yaml:"filename_graph"`
	FigureType    string        `json:"figure_type" yaml:"figure_type"`
}

//parseFeatures turns raw strings into values of the kinds the tree was trained on:
//cells of text columns stay text even when they look like numbers.
func parseFeatures(tree *dtl.Tree, raw []string) ([]dtl.Value, error) {
	if len(raw) != tree.FeatureCount() {
		return nil, fmt.Errorf("%w: got %d features, the tree was trained on %d",
			dtl.ErrShapeMismatch, len(raw), tree.FeatureCount())
	}
	features := make([]dtl.Value, len(raw))
	for ind, cell := range raw {
		if tree.Kinds[ind] == dtl.TextKind {
			features[ind] = dtl.Text(cell)
			continue
		}
		num, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q expects a number, got %q",
				dtl.ErrTypeMismatch, tree.Headers[ind], cell)
		}
		features[ind] = dtl.Numeric(num)
	}
	return features, nil
}

//traceLogger logs every node built by the tree builder.
func traceLogger(logger *log.Logger) dtl.TraceFunc {
	return func(event dtl.TraceEvent) {
		entry := logger.WithFields(log.Fields{
			"node":     event.TreeNodeId,
			"depth":    event.Depth,
			"rows":     event.Split.NumberOfRows,
			"impurity": event.Split.CurrentImpurity,
		})
		if event.Leaf != nil {
			entry.WithField("labels", strings.TrimSpace(event.Leaf.GraphDescription())).Debug("leaf")
			return
		}
		entry.WithFields(log.Fields{
			"question": event.Split.Question.String(),
			"gain":     event.Split.Gain,
		}).Debug("split")
	}
}

type runner struct {
	out     io.Writer
	options []dtl.Option
}

func (r runner) train(dataset *dtl.Dataset) (*dtl.Tree, error) {
	tree, err := dtl.BuildTree(dataset, r.options...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"rows":   dataset.Height(),
		"nodes":  len(tree.TreeNodes),
		"leaves": len(tree.LeafNodes),
		"depth":  tree.Depth(),
	}).Info("tree is trained")
	return tree, nil
}

//printPrediction prints a label/frequency table, labels sorted by name.
func (r runner) printPrediction(features []dtl.Value, prediction dtl.Prediction) {
	frequencies := prediction.Frequencies()
	labels := make([]string, 0, len(frequencies))
	for label := range frequencies {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	cells := make([]string, len(features))
	for ind, value := range features {
		cells[ind] = value.String()
	}
	fmt.Fprintf(r.out, "\nClassify by features = %s\n", strings.Join(cells, ", "))
	fmt.Fprintln(r.out, "|---------------------------|")
	fmt.Fprintln(r.out, "| Element \t|\tPossibility |")
	fmt.Fprintln(r.out, "|-----------|---------------|")
	for _, label := range labels {
		fmt.Fprintf(r.out, "| %s\t\t|\t\t%.4g\n", label, frequencies[label])
	}
}

func (r runner) classifyAll(tree *dtl.Tree, rows [][]dtl.Value) error {
	for _, features := range rows {
		prediction, err := tree.Classify(features...)
		if err != nil {
			return err
		}
		r.printPrediction(features, prediction)
	}
	return nil
}

//demoDataset is the fruit table used by the demo mode.
func demoDataset() (*dtl.Dataset, error) {
	raw := [][]interface{}{
		{"Green", 3, "Apple"},
		{"Yellow", 3, "Apple"},
		{"Orange", 4, "Mango"},
		{"Red", 1, "Grape"},
		{"Red", 1, "Grape"},
		{"Yellow", 3, "Lemon"},
	}
	rows := make([]dtl.Row, len(raw))
	for ind, cells := range raw {
		row, err := dtl.NewRow(cells...)
		if err != nil {
			return nil, err
		}
		rows[ind] = row
	}
	return dtl.NewDataset([]string{"Color", "Diameter"}, rows)
}

func (r runner) demo(string) error {
	dataset, err := demoDataset()
	if err != nil {
		return err
	}
	tree, err := r.train(dataset)
	if err != nil {
		return err
	}
	return r.classifyAll(tree, [][]dtl.Value{
		{dtl.Text("Yellow"), dtl.Numeric(3)},
		{dtl.Text("Orange"), dtl.Numeric(5)},
	})
}

func (r runner) classify(srcConfig string) error {
	var config ClassifyConfig
	if err := decodeConfig(srcConfig, &config); err != nil {
		return err
	}
	dataset, err := config.Train.load()
	if err != nil {
		return err
	}
	tree, err := r.train(dataset)
	if err != nil {
		return err
	}
	rows := make([][]dtl.Value, len(config.Features))
	for ind, raw := range config.Features {
		features, err := parseFeatures(tree, raw)
		if err != nil {
			return err
		}
		rows[ind] = features
	}
	return r.classifyAll(tree, rows)
}

func (r runner) evaluate(srcConfig string) error {
	var config EvaluateConfig
	if err := decodeConfig(srcConfig, &config); err != nil {
		return err
	}
	trainDataset, err := config.Train.load()
	if err != nil {
		return err
	}
	testDataset, err := config.Test.load()
	if err != nil {
		return err
	}
	tree, err := r.train(trainDataset)
	if err != nil {
		return err
	}

	evaluation, err := dtl.Evaluate(context.Background(), tree, testDataset, config.ThreadsNum)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "accuracy: %.4f (%d of %d)\n", evaluation.Accuracy(), evaluation.Correct, evaluation.Total)
	fmt.Fprintf(r.out, "actual \\ predicted\t%s\n", strings.Join(evaluation.Labels, "\t"))
	for _, actual := range evaluation.Labels {
		cells := make([]string, len(evaluation.Labels))
		for ind, predicted := range evaluation.Labels {
			cells[ind] = fmt.Sprint(evaluation.Count(actual, predicted))
		}
		fmt.Fprintf(r.out, "%s\t%s\n", actual, strings.Join(cells, "\t"))
	}
	return nil
}

func (r runner) graph(srcConfig string) error {
	var config GraphConfig
	if err := decodeConfig(srcConfig, &config); err != nil {
		return err
	}
	if config.FigureType == "" {
		config.FigureType = "svg"
	}
	dataset, err := config.Train.load()
	if err != nil {
		return err
	}
	tree, err := r.train(dataset)
	if err != nil {
		return err
	}
	log.WithField("file", config.FileNameGraph).Info("render tree")
	return tree.RenderFile(config.FileNameGraph, config.FigureType)
}

func (r runner) modes() map[string]func(string) error {
	return map[string]func(string) error{
		"demo":     r.demo,
		"classify": r.classify,
		"evaluate": r.evaluate,
		"graph":    r.graph,
	}
}

func main() {
	runMode := flag.String("mode", "demo", "you can select either 'demo', 'classify', 'evaluate' or 'graph' modes")
	config := flag.String("config", "decision_config.json", "a config file for the run of the program")
	verbose := flag.Bool("verbose", false, "log every node of the tree while it is built")

	flag.Parse()

	r := runner{out: os.Stdout}
	if *verbose {
		log.SetLevel(log.DebugLevel)
		r.options = append(r.options, dtl.WithTrace(traceLogger(log.StandardLogger())))
	}

	mode, ok := r.modes()[*runMode]
	if !ok {
		log.Fatalf("unknown mode %q", *runMode)
	}
	handleError(mode(*config))
}
