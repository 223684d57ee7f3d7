package extract

import "os"

// PlainText reads a UTF-8 text file as a single block.
type PlainText struct{}

func (PlainText) Extract(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return []string{string(data)}, nil
}
