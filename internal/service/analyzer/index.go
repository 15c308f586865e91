package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/models"
)

// ESIndexer bulk-loads scored opportunities into a per-channel index so the
// dashboard reads them without recomputing anything.
type ESIndexer struct {
	es          *elasticsearch.Client
	indexPrefix string
	log         logger.Logger
}

func NewESIndexer(es *elasticsearch.Client, indexPrefix string, log logger.Logger) *ESIndexer {
	return &ESIndexer{es: es, indexPrefix: indexPrefix, log: log}
}

type indexedOpportunity struct {
	RunID string `json:"runId"`
	models.ScoredOpportunity
}

// IndexRun writes every ranked entry in one _bulk call.
func (i *ESIndexer) IndexRun(ctx context.Context, runID string, report *models.Report) error {
	if len(report.Opportunities) == 0 {
		return nil
	}

	index := fmt.Sprintf("%s-%s", i.indexPrefix, report.Channel)

	var buf bytes.Buffer
	for _, o := range report.Opportunities {
		action := map[string]map[string]string{
			"index": {
				"_index": index,
				"_id":    fmt.Sprintf("%s-%d", runID, o.Rank),
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return errors.NewIndexFailedError(index, err)
		}
		if err := json.NewEncoder(&buf).Encode(indexedOpportunity{RunID: runID, ScoredOpportunity: o}); err != nil {
			return errors.NewIndexFailedError(index, err)
		}
	}

	res, err := i.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		i.es.Bulk.WithContext(ctx),
		i.es.Bulk.WithIndex(index),
	)
	if err != nil {
		return errors.NewIndexFailedError(index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexFailedError(index, fmt.Errorf("bulk status %s", res.Status()))
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return errors.NewIndexFailedError(index, err)
	}
	if bulkRes.Errors {
		return errors.NewIndexFailedError(index, fmt.Errorf("bulk response reported item failures"))
	}

	i.log.Debug("opportunities indexed", map[string]interface{}{
		"index": index,
		"docs":  len(report.Opportunities),
	})
	return nil
}
