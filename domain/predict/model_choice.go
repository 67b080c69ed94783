package predict

import "strings"

// ModelChoice names a classifier architecture on the server.
type ModelChoice string

const (
	ModelCNN         ModelChoice = "cnn"
	ModelResNet50    ModelChoice = "resnet50"
	ModelDenseNet121 ModelChoice = "densenet121"

	DefaultModel = ModelCNN
)

var modelLabels = map[ModelChoice]string{
	ModelCNN:         "Custom CNN",
	ModelResNet50:    "ResNet50",
	ModelDenseNet121: "DenseNet121",
}

// Models returns the selectable models in display order.
func Models() []ModelChoice {
	return []ModelChoice{ModelCNN, ModelResNet50, ModelDenseNet121}
}

// Valid reports whether m is one of the known models.
func (m ModelChoice) Valid() bool {
	_, ok := modelLabels[m]
	return ok
}

// Label is the human readable name shown in the model selector.
func (m ModelChoice) Label() string {
	if l, ok := modelLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m ModelChoice) String() string { return string(m) }

// ParseModelChoice accepts a model id or its display label, case-insensitive.
// Unknown or empty input yields DefaultModel.
func ParseModelChoice(s string) ModelChoice {
	s = strings.TrimSpace(s)
	for _, m := range Models() {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.Label()) {
			return m
		}
	}
	return DefaultModel
}
