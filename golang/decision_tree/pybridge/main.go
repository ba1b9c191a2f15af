// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"errors"
	"sync"
	"unsafe"

	"github.com/tarstars/decision_classifier/golang/decision_tree/dtl"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	trees             = make(map[uint64]*dtl.Tree)

	lastErrorMu sync.Mutex
	lastError   string
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeTree(tree *dtl.Tree) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	trees[handle] = tree
	nextHandle++
	return handle
}

func fetchTree(handle uint64) (*dtl.Tree, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	tree, ok := trees[handle]
	if !ok {
		return nil, errors.New("invalid tree handle")
	}
	return tree, nil
}

//decodeFeatures reads a json array of numbers and strings into a feature vector.
func decodeFeatures(featuresJSON string) ([]dtl.Value, error) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(featuresJSON), &raw); err != nil {
		return nil, err
	}
	return dtl.Values(raw...)
}

//classifyJSON classifies a json feature vector and returns the label frequencies as a json object.
func classifyJSON(tree *dtl.Tree, featuresJSON string) (string, error) {
	features, err := decodeFeatures(featuresJSON)
	if err != nil {
		return "", err
	}
	prediction, err := tree.Classify(features...)
	if err != nil {
		return "", err
	}
	result, err := json.Marshal(prediction.Frequencies())
	if err != nil {
		return "", err
	}
	return string(result), nil
}

//export TrainCSV
func TrainCSV(path *C.char) C.ulonglong {
	setLastError(nil)
	dataset, err := dtl.LoadCSVDataset(C.GoString(path))
	if err != nil {
		setLastError(err)
		return 0
	}
	tree, err := dtl.Train(dataset)
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(storeTree(tree))
}

//export ClassifyJSON
func ClassifyJSON(handle C.ulonglong, featuresJSON *C.char) *C.char {
	setLastError(nil)
	tree, err := fetchTree(uint64(handle))
	if err != nil {
		setLastError(err)
		return nil
	}
	result, err := classifyJSON(tree, C.GoString(featuresJSON))
	if err != nil {
		setLastError(err)
		return nil
	}
	return C.CString(result)
}

//export RenderTree
func RenderTree(handle C.ulonglong, path, figureType *C.char) C.int {
	setLastError(nil)
	tree, err := fetchTree(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	goFigureType := C.GoString(figureType)
	if goFigureType == "" {
		goFigureType = "svg"
	}
	if err := tree.RenderFile(C.GoString(path), goFigureType); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export FreeModel
func FreeModel(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(trees, uint64(handle))
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
