// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package linestore

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/antgroup/signalign/pkg/align"
	"github.com/go-sql-driver/mysql"
)

const (
	lineSignsQuery = "select sequence_no, position, sign_interpretation_id, sign from line_candidate_sign where line_id = ? order by sequence_no, position"
)

type ErrLineNotFound struct {
	LineID int64
}

func (e *ErrLineNotFound) Error() string {
	return fmt.Sprintf("line %d not found", e.LineID)
}

func IsNotFound(err error) bool {
	var e *ErrLineNotFound
	return errors.As(err, &e)
}

// DB reads candidate sequences of a line from MySQL. Each row is one sign of
// one candidate; candidates keep the order of sequence_no.
type DB struct {
	*sql.DB
}

func NewDB(cfg *mysql.Config) (*DB, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("new connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxIdleConns(25)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &DB{DB: db}, nil
}

type signRow struct {
	Sequence int64
	Position int64
	ID       uint64
	Char     string
}

func (d *DB) Line(ctx context.Context, lineID int64) (*align.Line, error) {
	rows, err := d.QueryContext(ctx, lineSignsQuery, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	signs := make([]signRow, 0, 100)
	for rows.Next() {
		var r signRow
		if err := rows.Scan(&r.Sequence, &r.Position, &r.ID, &r.Char); err != nil {
			return nil, err
		}
		signs = append(signs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assembleLine(lineID, signs)
}

// assembleLine groups rows by sequence number into candidates.
func assembleLine(lineID int64, rows []signRow) (*align.Line, error) {
	if len(rows) == 0 {
		return nil, &ErrLineNotFound{LineID: lineID}
	}
	slices.SortStableFunc(rows, func(a, b signRow) int {
		if c := cmp.Compare(a.Sequence, b.Sequence); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	candidates := make([]*align.Sequence, 0, 4)
	signs := make([]align.Sign, 0, len(rows))
	for i, r := range rows {
		if i > 0 && r.Sequence == rows[i-1].Sequence && r.Position == rows[i-1].Position {
			return nil, fmt.Errorf("line %d sequence %d: duplicate position %d", lineID, r.Sequence, r.Position)
		}
		signs = append(signs, align.Sign{ID: align.SignID(r.ID), Char: r.Char})
		if i == len(rows)-1 || rows[i+1].Sequence != r.Sequence {
			candidates = append(candidates, align.NewSequence(signs...))
			signs = signs[:0]
		}
	}
	return align.NewLine(candidates...)
}
