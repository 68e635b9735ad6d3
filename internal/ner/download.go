package ner

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	modelFile  = "model.onnx"
	vocabFile  = "vocab.txt"
	labelsFile = "labels.txt"

	defaultBaseURL = "https://github.com/smartmask/smartmask-models/releases/latest/download"
)

// baseURL is the release location for model artifacts. SMARTMASK_MODEL_URL
// overrides it (air-gapped mirrors, tests).
func baseURL() string {
	if u := os.Getenv("SMARTMASK_MODEL_URL"); u != "" {
		return u
	}
	return defaultBaseURL
}

// ensureArtifacts checks that all model files exist under dir, downloading
// each missing one when allowed. This is the single remediation step the
// loader performs; it is never retried.
func ensureArtifacts(dir string, autoDownload bool, logger *zap.Logger) error {
	var missing []string
	for _, name := range []string{modelFile, vocabFile, labelsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			missing = append(missing, name)
		} else if err != nil {
			return err
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if !autoDownload {
		return fmt.Errorf("model artifacts missing in %s (%v); rerun with --download-models", dir, missing)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}
	client := &http.Client{Timeout: 5 * time.Minute}
	for _, name := range missing {
		logger.Info("downloading model artifact",
			zap.String("artifact", name),
			zap.String("dir", dir))
		if err := fetch(client, baseURL()+"/"+name, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
	}
	return nil
}

// fetch writes the artifact to a temp file and renames it into place so a
// partial download never passes the existence check on the next run.
func fetch(client *http.Client, url, dest string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "smartmask-model-fetch")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.partial")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
