package classifier

import (
	"fmt"
	"math"
	"sync"

	"github.com/mattn/go-tflite"
)

// Result is the outcome of one inference: the winning label and its
// probability expressed as a percentage (two decimal places).
type Result struct {
	Label      string
	Confidence float64
}

// Classifier wraps a TensorFlow Lite interpreter together with its label
// vocabulary. Read-only after construction except for the interpreter
// invocation itself, which is serialized by a mutex because tflite does not
// document concurrent Invoke on one interpreter as safe.
type Classifier struct {
	model       *tflite.Model
	options     *tflite.InterpreterOptions
	interpreter *tflite.Interpreter
	labels      []string
	mu          sync.Mutex
}

// New loads the model artifact at modelPath, creates an interpreter with the
// given thread count, allocates tensors and validates that the output
// dimensionality matches the label vocabulary. Construction is a one-time,
// blocking startup step; callers must treat an error as fatal to serving.
func New(modelPath string, labels []string, numThreads int) (*Classifier, error) {
	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, fmt.Errorf("cannot load model from %s", modelPath)
	}

	options := tflite.NewInterpreterOptions()
	options.SetNumThread(numThreads)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("cannot create interpreter")
	}

	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("tensor allocation failed")
	}

	output := interpreter.GetOutputTensor(0)
	outputSize := output.Dim(output.NumDims() - 1)
	if outputSize != len(labels) {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("model outputs %d classes but vocabulary has %d labels",
			outputSize, len(labels))
	}

	return &Classifier{
		model:       model,
		options:     options,
		interpreter: interpreter,
		labels:      labels,
	}, nil
}

// Labels returns the ordered label vocabulary.
func (c *Classifier) Labels() []string {
	return c.labels
}

// Predict runs one inference over a preprocessed single-element batch tensor
// and returns the maximum-probability label with its confidence percentage.
func (c *Classifier) Predict(input []float32) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := c.interpreter.GetInputTensor(0)
	if in == nil {
		return Result{}, fmt.Errorf("cannot get input tensor")
	}
	if len(in.Float32s()) != len(input) {
		return Result{}, fmt.Errorf("input tensor expects %d values, got %d",
			len(in.Float32s()), len(input))
	}
	copy(in.Float32s(), input)

	if status := c.interpreter.Invoke(); status != tflite.OK {
		return Result{}, fmt.Errorf("tensor invoke failed")
	}

	out := c.interpreter.GetOutputTensor(0)
	scores := make([]float32, len(c.labels))
	copy(scores, out.Float32s())

	idx, confidence := Top(scores)
	return Result{
		Label:      c.labels[idx],
		Confidence: confidence,
	}, nil
}

// Close releases the interpreter and model resources.
func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interpreter != nil {
		c.interpreter.Delete()
		c.interpreter = nil
	}
	if c.options != nil {
		c.options.Delete()
		c.options = nil
	}
	if c.model != nil {
		c.model.Delete()
		c.model = nil
	}
}

// Top returns the index of the maximum score and that maximum expressed as a
// percentage rounded to two decimal places.
func Top(scores []float32) (int, float64) {
	maxIdx := 0
	maxVal := scores[0]
	for i, v := range scores {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}
	return maxIdx, math.Round(float64(maxVal)*100*100) / 100
}
