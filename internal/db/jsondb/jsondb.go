// Package jsondb provides a JSON-file-backed implementation of the
// key-value storage contract. The whole store lives in one file holding a
// single flat string map; the file is rewritten on every mutation so each
// write is durable before the caller continues.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/patric-chuzhbe/localtodo/internal/logger"
)

type JSONDB struct {
	fileName string
	Cache    map[string]string
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cache *map[string]string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cache)
	if err != nil {
		return err
	}

	return nil
}

// New opens the store file, creating it with an empty object when absent.
// An unparsable file is treated as an empty store: corrupt persisted state
// degrades to "nothing saved yet" instead of refusing to start.
func New(fileName string) (*JSONDB, error) {
	db := JSONDB{
		fileName: fileName,
		Cache:    map[string]string{},
	}

	err := parseJSONFile(db.fileName, &db.Cache)
	if err == nil {
		return &db, nil
	}

	if os.IsNotExist(err) {
		if err := initDBFile(fileName); err != nil {
			return nil, err
		}
		if err := parseJSONFile(db.fileName, &db.Cache); err != nil {
			return nil, err
		}

		return &db, nil
	}

	logger.Log.Debugln("unparsable store file, starting empty:", "fileName", fileName, "error", err)
	db.Cache = map[string]string{}

	return &db, nil
}

func (db *JSONDB) flush() error {
	if db.fileName == "" {
		return nil
	}

	return writeToJSONFile(db.fileName, db.Cache)
}

func (db *JSONDB) Get(ctx context.Context, key string) (value string, found bool, err error) {
	value, found = db.Cache[key]
	err = nil

	return
}

func (db *JSONDB) Set(ctx context.Context, key, value string) error {
	db.Cache[key] = value

	return db.flush()
}

func (db *JSONDB) Remove(ctx context.Context, key string) error {
	delete(db.Cache, key)

	return db.flush()
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

func (db *JSONDB) Close() error {
	return db.flush()
}
