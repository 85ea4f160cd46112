// Package postgresql provides the relational query node. Results are
// serialized to a JSON envelope so downstream nodes can consume them as
// text.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// PostgreSQL driver registration.
	_ "github.com/lib/pq"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

const (
	defaultHost = "localhost"
	defaultPort = "5432"

	// queryTimeout bounds one round-trip; there is no run-level timeout.
	queryTimeout = 30 * time.Second
)

// PostgreSQLNode runs one SQL query against a configured database.
// Missing parameters, query errors and timeouts are reported as error
// events with empty output; only a failed connection aborts the run.
type PostgreSQLNode struct{}

// NewPostgreSQLNode creates a new PostgreSQL node capability.
func NewPostgreSQLNode() *PostgreSQLNode {
	return &PostgreSQLNode{}
}

// queryEnvelope is the JSON shape propagated on success.
type queryEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Columns  []columnInfo     `json:"columns"`
	Data     []map[string]any `json:"data"`
	RowCount int              `json:"row_count"`
}

type columnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Execute validates the connection parameters, runs the query under the
// fixed timeout and emits the serialized result.
func (n *PostgreSQLNode) Execute(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	logs := make([]models.Log, 0, 2)

	emit := func(kind, text string) {
		logData := models.LogData{Kind: kind, NodeID: node.ID, Data: models.StringPtr(text)}
		logs = append(logs, models.NewLog(logData))
		sink.SendJSON(logData)
	}

	host := configOrDefault(node, "host", defaultHost)
	port := configOrDefault(node, "port", defaultPort)
	database := node.Config["database"]
	username := node.Config["username"]
	password := node.Config["password"]
	query := node.Config["query"]

	switch {
	case database == "":
		emit(models.EventPostgreSQLError, "database name is empty")

		return logs, "", nil
	case username == "":
		emit(models.EventPostgreSQLError, "username is empty")

		return logs, "", nil
	case query == "":
		emit(models.EventPostgreSQLError, "SQL query is empty")

		return logs, "", nil
	}

	emit(models.EventPostgreSQLInfo, fmt.Sprintf(
		"connecting to PostgreSQL database: %s@%s:%s/%s", username, host, port, database))

	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, database, username, password)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return logs, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	defer func() {
		_ = db.Close()
	}()

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.PingContext(queryCtx); err != nil {
		return logs, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	output, err := runQuery(queryCtx, db, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			emit(models.EventPostgreSQLError, "query timed out")
		} else {
			emit(models.EventPostgreSQLError, fmt.Sprintf("query execution failed: %v", err))
		}

		return logs, "", nil
	}

	logData := models.LogData{
		Kind:   models.EventOutput,
		NodeID: node.ID,
		Data:   models.StringPtr(output),
		Result: models.StringPtr(output),
	}
	logs = append(logs, models.NewLog(logData))
	sink.SendJSON(logData)

	return logs, output, nil
}

// runQuery executes the query and serializes column metadata plus row data
// into the JSON envelope.
func runQuery(ctx context.Context, db *sql.DB, query string) (string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = rows.Close()
	}()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return "", err
	}

	envelope := queryEnvelope{
		Success: true,
		Columns: make([]columnInfo, 0, len(columnTypes)),
		Data:    make([]map[string]any, 0),
	}

	for _, column := range columnTypes {
		envelope.Columns = append(envelope.Columns, columnInfo{
			Name: column.Name(),
			Type: column.DatabaseTypeName(),
		})
	}

	values := make([]any, len(columnTypes))
	scanTargets := make([]any, len(columnTypes))

	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return "", err
		}

		row := make(map[string]any, len(columnTypes))
		for i, column := range columnTypes {
			row[column.Name()] = normalizeValue(values[i])
		}

		envelope.Data = append(envelope.Data, row)
	}

	if err := rows.Err(); err != nil {
		return "", err
	}

	envelope.RowCount = len(envelope.Data)
	if envelope.RowCount == 0 {
		envelope.Columns = make([]columnInfo, 0)
		envelope.Message = "query executed successfully, no rows returned"
	} else {
		envelope.Message = fmt.Sprintf("query executed successfully, %d rows returned", envelope.RowCount)
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

// normalizeValue makes driver values JSON-friendly. lib/pq hands text
// columns back as []byte.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}

func configOrDefault(node *models.Node, key, fallback string) string {
	if value := node.Config[key]; value != "" {
		return value
	}

	return fallback
}
