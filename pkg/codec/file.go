package codec

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// ReadFile decodes the document at path using the format implied by its
// extension.
func ReadFile(path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Decode(bufio.NewReader(file), format, path)
	if err != nil {
		return Document{}, err
	}
	log.Debugf("Decoded %s (%s): %d entries", path, format, len(doc.Content))
	return doc, nil
}

// WriteFile encodes doc to path using the format implied by its extension.
func WriteFile(path string, doc Document) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create document %s: %w", path, err)
	}
	w := bufio.NewWriter(file)
	if err := Encode(w, format, doc); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return file.Close()
}
