package integration

import (
	"bufio"
	"encoding/json"
	"os"

	// revive:disable:dot-imports
	. "github.com/onsi/gomega"
	// revive:enable:dot-imports
)

var tempLogfile *os.File

func setupTempLogfile() error {
	file, err := os.CreateTemp("", "wordtrie_error_log")
	if err != nil {
		return err
	}
	tempLogfile = file
	return nil
}

func resetTempLogfile() {
	_, err := tempLogfile.Seek(0, 0)
	Expect(err).NotTo(HaveOccurred())
	err = tempLogfile.Truncate(0)
	Expect(err).NotTo(HaveOccurred())
}

func cleanupTempLogfile() {
	if tempLogfile != nil {
		tempLogfile.Close()
		os.Remove(tempLogfile.Name())
	}
}

type logEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func lastLogEntries() []logEntry {
	file, err := os.Open(tempLogfile.Name())
	Expect(err).NotTo(HaveOccurred())
	defer file.Close()

	var entries []logEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry logEntry
		if json.Unmarshal(scanner.Bytes(), &entry) == nil {
			entries = append(entries, entry)
		}
	}
	Expect(scanner.Err()).NotTo(HaveOccurred())
	return entries
}
