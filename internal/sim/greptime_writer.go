package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes mission log entries and run reports to GreptimeDB.
type GreptimeDBWriter struct {
	client      greptimeClient
	logTable    string
	resultTable string
	timeout     time.Duration
}

// NewGreptimeDBWriter connects to endpoint ("host" or "host:port").
// Tables are created by GreptimeDB on first write.
func NewGreptimeDBWriter(endpoint, database, logTable, resultTable string) (*GreptimeDBWriter, error) {
	host, port := endpoint, defaultGreptimePort
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("greptime port %q: %w", p, err)
		}
		host, port = h, n
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return &GreptimeDBWriter{
		client:      client,
		logTable:    logTable,
		resultTable: resultTable,
		timeout:     5 * time.Second,
	}, nil
}

func (w *GreptimeDBWriter) write(tbl *table.Table) error {
	timeout := w.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if _, err := w.client.Write(ctx, tbl); err != nil {
		return fmt.Errorf("greptime write: %w", err)
	}
	return nil
}

// WriteEntry inserts a single log entry.
func (w *GreptimeDBWriter) WriteEntry(e LogEntry) error {
	return w.WriteEntries([]LogEntry{e})
}

// WriteEntries inserts multiple log entries.
func (w *GreptimeDBWriter) WriteEntries(rows []LogEntry) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.logTable)
	if err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		tag  bool
		typ  types.ColumnType
	}{
		{"mission_key", true, types.STRING},
		{"session_id", true, types.STRING},
		{"sim_second", false, types.INT64},
		{"kind", false, types.STRING},
		{"message", false, types.STRING},
		{"details", false, types.STRING},
		{"tool", false, types.STRING},
	} {
		if c.tag {
			err = tbl.AddTagColumn(c.name, c.typ)
		} else {
			err = tbl.AddFieldColumn(c.name, c.typ)
		}
		if err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, e := range rows {
		if err := tbl.AddRow(e.MissionKey, e.SessionID, int64(e.Timestamp), string(e.Kind),
			e.Message, e.Details, string(e.Tool), e.RecordedAt); err != nil {
			return err
		}
	}
	return w.write(tbl)
}

// WriteReport inserts one row into the result table.
func (w *GreptimeDBWriter) WriteReport(r Report) error {
	tbl, err := table.New(w.resultTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("mission_key", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("tools", types.JSON); err != nil {
		return err
	}
	for _, name := range []string{"score", "xp", "detection_time_s", "tools_used", "total_time_s"} {
		if err := tbl.AddFieldColumn(name, types.INT64); err != nil {
			return err
		}
	}
	if err := tbl.AddFieldColumn("data_loss", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("passed", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("reason", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	tools, err := json.Marshal(r.ToolsUsed)
	if err != nil {
		return err
	}
	if r.ToolsUsed == nil {
		tools = []byte("[]")
	}
	res := r.RunResult()
	if err := tbl.AddRow(r.MissionKey, r.SessionID, string(tools),
		int64(res.Score), int64(r.Score.ExperienceAwarded), int64(res.DetectionTimeSeconds),
		int64(len(res.ToolsUsed)), int64(r.TotalElapsedSeconds),
		res.DataLoss, r.Score.Passed, string(r.Reason), r.GeneratedAt); err != nil {
		return err
	}
	return w.write(tbl)
}
