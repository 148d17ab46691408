// Package db looks up song metadata (title, artist, copyright) in DynamoDB,
// keyed by the MIDI file name.
package db

import (
	"time"

	"github.com/jsphweid/notegrid/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// BatchGetItem accepts at most this many keys per call.
const maxBatch = 100

// Unprocessed keys are retried this many times, doubling the delay each time.
const maxRetries = 5

var retryDelay = 100 * time.Millisecond

type metadataItem struct {
	PK        string `dynamodbav:"PK"`
	Title     string `dynamodbav:"Title"`
	Artist    string `dynamodbav:"Artist"`
	Copyright string `dynamodbav:"Copyright"`
}

// BatchGetter is the part of the DynamoDB client used here.
type BatchGetter interface {
	BatchGetItem(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)
}

func NewClient(endpoint, region string) (*dynamodb.DynamoDB, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

func getBatch(client BatchGetter, table string, filenames []string, res map[string]model.SongMetadata) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}
	request := map[string]*dynamodb.KeysAndAttributes{table: {Keys: keys}}

	delay := retryDelay
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt > maxRetries {
			return errors.Errorf("DynamoDB left keys unprocessed after %d retries", maxRetries)
		}
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		out, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return errors.Wrap(err, "error from DynamoDB")
		}
		for _, av := range out.Responses[table] {
			var item metadataItem
			if err := dynamodbattribute.UnmarshalMap(av, &item); err != nil {
				return errors.Wrap(err, "could not read metadata item")
			}
			res[item.PK] = model.SongMetadata{
				Name:      item.Title,
				Composer:  item.Artist,
				Copyright: item.Copyright,
			}
		}
		request = out.UnprocessedKeys
	}
	return nil
}

// unique drops repeated names, which BatchGetItem rejects.
func unique(filenames []string) []string {
	seen := make(map[string]bool, len(filenames))
	var res []string
	for _, f := range filenames {
		if !seen[f] {
			seen[f] = true
			res = append(res, f)
		}
	}
	return res
}

// GetSongMetadatas fetches the metadata stored for each file name. Files
// without an entry are missing from the result.
func GetSongMetadatas(client BatchGetter, table string, filenames []string) (map[string]model.SongMetadata, error) {
	res := make(map[string]model.SongMetadata)
	filenames = unique(filenames)
	for start := 0; start < len(filenames); start += maxBatch {
		end := start + maxBatch
		if end > len(filenames) {
			end = len(filenames)
		}
		if err := getBatch(client, table, filenames[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ApplyMetadata copies the non-empty descriptive fields of md onto the song.
func ApplyMetadata(song *model.Song, md model.SongMetadata) {
	if md.Name != "" {
		song.Metadata.Name = md.Name
	}
	if md.Composer != "" {
		song.Metadata.Composer = md.Composer
	}
	if md.Copyright != "" {
		song.Metadata.Copyright = md.Copyright
	}
}
