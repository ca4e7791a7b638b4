package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// ReplayLog replays recorded log entries from r to writer, pacing them by
// their simulated seconds. A speed >1 accelerates playback.
// If speed <= 0, no artificial delay is inserted.
func ReplayLog(r io.Reader, writer EntryWriter, speed float64) (int, error) {
	dec := json.NewDecoder(r)
	n := 0
	prev := -1
	for {
		var e LogEntry
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if prev >= 0 && speed > 0 {
			diff := time.Duration(e.Timestamp-prev) * time.Second
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteEntry(e); err != nil {
			return n, err
		}
		n++
		prev = e.Timestamp
	}
}

// ReplayLogFile opens a file and replays its log entries.
func ReplayLogFile(path string, writer EntryWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
