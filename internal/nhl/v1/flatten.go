package v1

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
)

// PlayerRow is one flattened player record: column name to rendered value.
// Columns absent from the source record are simply missing and reindex to
// empty cells when the CSV is rendered.
type PlayerRow map[string]string

// FlattenPlayers converts one boxscore into the ordered sequence of flat
// player rows: all home players first, then all away players, each tagged
// with its side. Player keys are sorted within each side so output order is
// deterministic.
func FlattenPlayers(box *BoxscoreResponse) ([]PlayerRow, error) {
	rows := make([]PlayerRow, 0,
		len(box.Teams.Home.Players)+len(box.Teams.Away.Players))

	for _, side := range []struct {
		name string
		team BoxscoreTeam
	}{
		{"home", box.Teams.Home},
		{"away", box.Teams.Away},
	} {
		keys := make([]string, 0, len(side.team.Players))
		for key := range side.team.Players {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			row, err := flattenPlayer(side.team.Players[key])
			if err != nil {
				return nil, fmt.Errorf("flatten player %s: %w", key, err)
			}
			row["side"] = side.name
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// flattenPlayer turns one raw player record into a PlayerRow with
// underscore-joined path names rooted at "player".
func flattenPlayer(raw json.RawMessage) (PlayerRow, error) {
	// json.Number keeps the exact decimal form of every numeric value, so
	// nullable integer fields (current age, current team id) can never be
	// promoted to floats.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("decode player record: %w", err)
	}

	row := make(PlayerRow)
	flattenInto(row, "player", record)
	return row, nil
}

func flattenInto(row PlayerRow, prefix string, node map[string]any) {
	for key, value := range node {
		path := prefix + "_" + key
		switch v := value.(type) {
		case map[string]any:
			flattenInto(row, path, v)
		case string:
			row[path] = v
		case json.Number:
			row[path] = v.String()
		case bool:
			// True/False to match the CSV bytes existing consumers parse.
			if v {
				row[path] = "True"
			} else {
				row[path] = "False"
			}
		case nil:
			row[path] = ""
		default:
			row[path] = fmt.Sprint(v)
		}
	}
}

// RenderCSV serializes the rows onto the fixed column schema: a header line
// followed by one line per row, standard CSV quoting, empty cells for
// columns a row does not carry.
func RenderCSV(rows []PlayerRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, column := range header {
			record[i] = row[column]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
