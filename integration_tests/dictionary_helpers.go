package integration

import (
	"context"

	"github.com/jackc/pgx/v5"

	// revive:disable:dot-imports
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	// revive:enable:dot-imports
)

const testDictionary = "integration"

var dictionaryConn *pgx.Conn

var _ = AfterEach(func() {
	clearDictionary()
})

func initDictionaryHelper() error {
	var err error
	ctx := context.Background()
	dictionaryConn, err = pgx.Connect(ctx, postgresContainer.MustConnectionString(ctx))
	return err
}

func closeDictionaryHelper() {
	if dictionaryConn != nil {
		dictionaryConn.Close(context.Background())
	}
}

func addWords(words ...string) {
	batch := &pgx.Batch{}
	for _, w := range words {
		batch.Queue("INSERT INTO dictionary_words (dictionary, word) VALUES ($1, $2)", testDictionary, w)
	}
	err := dictionaryConn.SendBatch(context.Background(), batch).Close()
	Expect(err).NotTo(HaveOccurred())
}

func clearDictionary() {
	_, err := dictionaryConn.Exec(context.Background(), "DELETE FROM dictionary_words")
	Expect(err).NotTo(HaveOccurred())
}
