// Package ner wraps a pre-trained ONNX token-classification model behind a
// small engine type. The engine is process-scoped state: constructed once,
// read-only afterwards, and safe for concurrent inference.
package ner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

// Entity is a single span the model recognized, in appearance order.
// Text is the exact substring of the input it covers.
type Entity struct {
	Text  string
	Label string // PERSON, GPE, LOC, ORG, ...
}

// Config controls where the model artifacts live and whether a missing
// model may be fetched once at load time.
type Config struct {
	// Dir holds model.onnx, vocab.txt and labels.txt. Empty means the
	// default cache directory (~/.cache/smartmask/ner).
	Dir string

	// AutoDownload permits a one-time artifact download when the model is
	// missing. Load is never retried beyond that single remediation.
	AutoDownload bool

	// MaxTokens caps the wordpiece sequence length per inference call.
	MaxTokens int
}

const defaultMaxTokens = 512

// ErrModelUnavailable reports that the model could not be loaded or
// acquired. Callers treat this as fatal at startup: the process must not
// silently run with a missing recognizer.
var ErrModelUnavailable = fmt.Errorf("ner model unavailable")

// Engine owns the ONNX session and tokenizer. Construct via Load; the
// zero value is not usable.
type Engine struct {
	session    *ort.DynamicAdvancedSession
	tok        *tokenizer
	labels     []string
	inputNames []string
	maxTokens  int
	logger     *zap.Logger

	mu    sync.RWMutex
	ready bool
}

// DefaultDir returns the default model cache directory.
func DefaultDir() string {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "smartmask", "ner")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join(".", ".smartmask", "ner")
	}
	return filepath.Join(home, ".cache", "smartmask", "ner")
}

// Load initializes the engine. If the model artifacts are missing and
// cfg.AutoDownload is set, it attempts one download and retries the load;
// any remaining failure wraps ErrModelUnavailable.
func Load(cfg Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	if err := ensureArtifacts(dir, cfg.AutoDownload, logger); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	tok, err := loadTokenizer(filepath.Join(dir, vocabFile))
	if err != nil {
		return nil, fmt.Errorf("%w: load vocab: %v", ErrModelUnavailable, err)
	}
	labels, err := loadLabels(filepath.Join(dir, labelsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: load labels: %v", ErrModelUnavailable, err)
	}

	modelPath := filepath.Join(dir, modelFile)
	if shlib := os.Getenv("ONNXRUNTIME_SHARED_LIB"); shlib != "" {
		ort.SetSharedLibraryPath(shlib)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("%w: onnxruntime init: %v", ErrModelUnavailable, err)
	}

	inputsInfo, outputsInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect model: %v", ErrModelUnavailable, err)
	}
	if len(outputsInfo) == 0 {
		return nil, fmt.Errorf("%w: model declares no outputs", ErrModelUnavailable)
	}

	inputNames := orderInputNames(inputsInfo)
	outputName := outputsInfo[0].Name

	sess, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrModelUnavailable, err)
	}

	logger.Info("ner model loaded",
		zap.String("model", modelPath),
		zap.Strings("inputs", inputNames),
		zap.String("output", outputName),
		zap.Int("labels", len(labels)),
		zap.Int("vocab", tok.size()))

	return &Engine{
		session:    sess,
		tok:        tok,
		labels:     labels,
		inputNames: inputNames,
		maxTokens:  maxTokens,
		logger:     logger,
		ready:      true,
	}, nil
}

// orderInputNames prefers the common transformer input order, falling back
// to the model-declared names sorted for determinism.
func orderInputNames(inputsInfo []ort.InputOutputInfo) []string {
	available := map[string]bool{}
	for _, ii := range inputsInfo {
		available[strings.ToLower(ii.Name)] = true
	}
	var names []string
	for _, name := range []string{"input_ids", "attention_mask", "token_type_ids"} {
		if available[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		for _, ii := range inputsInfo {
			names = append(names, ii.Name)
		}
		sort.Strings(names)
	}
	return names
}

// Ready reports whether the engine can serve inference calls.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready && e.session != nil
}

// Close releases the session and runtime environment.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	ort.DestroyEnvironment()
	e.ready = false
	return nil
}

// Entities runs the model over text and returns recognized spans in
// appearance order. Inference is deterministic for identical input given a
// fixed model version.
func (e *Engine) Entities(text string) ([]Entity, error) {
	if !e.Ready() {
		return nil, fmt.Errorf("%w: engine not ready", ErrModelUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	words := e.tok.words(text)
	if len(words) == 0 {
		return nil, nil
	}

	var out []Entity
	// Long documents are classified window by window; entity order is
	// preserved because windows never reorder.
	for start := 0; start < len(words); {
		end, pieces := e.tok.encodeWindow(words[start:], e.maxTokens)
		labels, err := e.classify(pieces)
		if err != nil {
			return nil, err
		}
		out = append(out, decodeEntities(text, words[start:start+end], pieces, labels, e.labels)...)
		start += end
	}
	return out, nil
}

// classify runs one window through the session and returns the argmax
// label index per wordpiece.
func (e *Engine) classify(pieces []piece) ([]int, error) {
	seqLen := len(pieces) + 2 // [CLS] ... [SEP]
	inputIDs := make([]int64, 0, seqLen)
	inputIDs = append(inputIDs, int64(e.tok.clsID))
	for _, p := range pieces {
		inputIDs = append(inputIDs, int64(p.id))
	}
	inputIDs = append(inputIDs, int64(e.tok.sepID))

	attention := make([]int64, seqLen)
	for i := range attention {
		attention[i] = 1
	}
	tokenTypes := make([]int64, seqLen)

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor[int64](shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor[int64](shape, attention)
	if err != nil {
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor[int64](shape, tokenTypes)
	if err != nil {
		return nil, fmt.Errorf("create token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	inputs := make([]ort.Value, 0, len(e.inputNames))
	for _, rawName := range e.inputNames {
		switch name := strings.ToLower(rawName); {
		case strings.Contains(name, "mask"):
			inputs = append(inputs, maskTensor)
		case strings.Contains(name, "type") || strings.Contains(name, "segment"):
			inputs = append(inputs, typeTensor)
		default:
			inputs = append(inputs, idsTensor)
		}
	}

	outputs := make([]ort.Value, 1)
	e.mu.RLock()
	err = e.session.Run(inputs, outputs)
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("ner inference failed: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("ner inference returned no output")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type (want float32 tensor)")
	}
	outShape := logits.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("unexpected logits shape %v", outShape)
	}
	numLabels := int(outShape[2])
	if numLabels != len(e.labels) {
		return nil, fmt.Errorf("model emits %d labels, labels file has %d", numLabels, len(e.labels))
	}
	data := logits.GetData()
	if len(data) != seqLenFromShape(outShape)*numLabels {
		return nil, fmt.Errorf("unexpected logits length %d for shape %v", len(data), outShape)
	}

	// Argmax per position, skipping [CLS] and [SEP].
	seq := seqLenFromShape(outShape)
	out := make([]int, 0, seq-2)
	for pos := 1; pos < seq-1; pos++ {
		base := pos * numLabels
		best := 0
		for l := 1; l < numLabels; l++ {
			if data[base+l] > data[base+best] {
				best = l
			}
		}
		out = append(out, best)
	}
	return out, nil
}

func seqLenFromShape(shape ort.Shape) int {
	return int(shape[1])
}

// decodeEntities folds BIO wordpiece labels back into text spans. A word
// takes the label of its first piece; contiguous words with the same
// category form one entity whose text is the exact source substring.
func decodeEntities(text string, words []word, pieces []piece, labels []int, labelSet []string) []Entity {
	// First-piece label per word.
	wordLabel := make([]string, len(words))
	for i := range wordLabel {
		wordLabel[i] = "O"
	}
	for i, p := range pieces {
		if i >= len(labels) {
			break
		}
		if p.first && p.word < len(wordLabel) {
			wordLabel[p.word] = labelSet[labels[i]]
		}
	}

	var out []Entity
	i := 0
	for i < len(words) {
		cat, _ := splitBIO(wordLabel[i])
		if cat == "" {
			i++
			continue
		}
		// Extend through I- continuations of the same category. A fresh
		// B- tag starts a new entity even when categories match.
		j := i + 1
		for j < len(words) {
			nextCat, nextBegin := splitBIO(wordLabel[j])
			if nextCat != cat || nextBegin {
				break
			}
			j++
		}
		out = append(out, Entity{
			Text:  text[words[i].start:words[j-1].end],
			Label: cat,
		})
		i = j
	}
	return out
}

// splitBIO returns the category of a BIO tag and whether it is a B- tag.
// "O" yields an empty category.
func splitBIO(tag string) (string, bool) {
	switch {
	case strings.HasPrefix(tag, "B-"):
		return tag[2:], true
	case strings.HasPrefix(tag, "I-"):
		return tag[2:], false
	default:
		return "", false
	}
}
