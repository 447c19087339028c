package gateway

import (
	"encoding/json"
	"fmt"
)

type queryRequest struct {
	Table   string            `json:"table"`
	Select  string            `json:"select"`
	Filters map[string]any    `json:"filters"`
	Limit   int               `json:"limit"`
	Order   map[string]string `json:"order"`
}

type insertRequest struct {
	Table string          `json:"table"`
	Data  json.RawMessage `json:"data"`
}

// records decodes the data field, which may be a single object or an array
// of objects.
func (r insertRequest) records() ([]Row, error) {
	if len(r.Data) == 0 {
		return nil, fmt.Errorf("data is required")
	}
	var single Row
	if err := json.Unmarshal(r.Data, &single); err == nil {
		return []Row{single}, nil
	}
	var many []Row
	if err := json.Unmarshal(r.Data, &many); err == nil {
		return many, nil
	}
	return nil, fmt.Errorf("data must be an object or an array of objects")
}

type updateRequest struct {
	Table       string         `json:"table"`
	Data        map[string]any `json:"data"`
	MatchColumn string         `json:"match_column"`
	MatchValue  any            `json:"match_value"`
}

type deleteRequest struct {
	Table       string `json:"table"`
	MatchColumn string `json:"match_column"`
	MatchValue  any    `json:"match_value"`
}

type executeSQLRequest struct {
	Query  string `json:"query"`
	Params []any  `json:"params"`
}

type createTableRequest struct {
	TableName  string            `json:"table_name"`
	Columns    map[string]string `json:"columns"`
	PrimaryKey string            `json:"primary_key"`
}
