package ml

import (
	"errors"
	"fmt"
)

// DecisionTree is a fitted binary tree stored as a flat node list with node 0 as
// the root. Leaves carry per-class sample counts in artifact class order.
type DecisionTree struct {
	classes  [2]int
	features int
	nodes    []TreeNode
}

type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value,omitempty"`
}

type decisionTreeFile struct {
	Classes   []int      `json:"classes"`
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

// NewDecisionTree validates the node list. nFeatures of 0 defaults to FeatureCount.
func NewDecisionTree(classes []int, nFeatures int, nodes []TreeNode) (*DecisionTree, error) {
	order, err := parseClasses(classes)
	if err != nil {
		return nil, err
	}
	if nFeatures <= 0 {
		nFeatures = FeatureCount
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: tree has no nodes", ErrInvalidArtifact)
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if len(node.Value) != 2 {
				return nil, fmt.Errorf("%w: leaf %d has %d class counts", ErrInvalidArtifact, i, len(node.Value))
			}
			if node.Value[0] < 0 || node.Value[1] < 0 || node.Value[0]+node.Value[1] <= 0 {
				return nil, fmt.Errorf("%w: leaf %d has invalid class counts %v", ErrInvalidArtifact, i, node.Value)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= nFeatures {
			return nil, fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidArtifact, i, node.FeatureIdx)
		}
		// Children always follow their parent, so a walk can never revisit a node.
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("%w: node %d has invalid children", ErrInvalidArtifact, i)
		}
	}
	return &DecisionTree{
		classes:  order,
		features: nFeatures,
		nodes:    append([]TreeNode(nil), nodes...),
	}, nil
}

func (dt *DecisionTree) Load(path string) error {
	var file decisionTreeFile
	if err := readArtifact(path, &file); err != nil {
		return err
	}
	loaded, err := NewDecisionTree(file.Classes, file.NFeatures, file.Nodes)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*dt = *loaded
	return nil
}

func (dt *DecisionTree) Features() int {
	return dt.features
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	proba, err := dt.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return argmax(proba), nil
}

func (dt *DecisionTree) PredictProba(features []float64) ([2]float64, error) {
	if len(dt.nodes) == 0 {
		return [2]float64{}, errors.New("decision tree not loaded")
	}
	if err := checkShape(features, dt.features); err != nil {
		return [2]float64{}, err
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			total := node.Value[0] + node.Value[1]
			return byLabel(dt.classes, [2]float64{node.Value[0] / total, node.Value[1] / total}), nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
