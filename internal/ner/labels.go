package ner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadLabels reads the model's BIO tag set, one tag per line, line number
// = class index. The file ships with the model; the engine never assumes
// a particular tag inventory beyond BIO shape.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		tag := strings.TrimSpace(sc.Text())
		if tag == "" {
			continue
		}
		if tag != "O" && !strings.HasPrefix(tag, "B-") && !strings.HasPrefix(tag, "I-") {
			return nil, fmt.Errorf("label %q is not a BIO tag", tag)
		}
		labels = append(labels, tag)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}
