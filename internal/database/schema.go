package database

import (
	"fmt"

	. "haisou/internal/models"

	"gorm.io/gorm"
)

type SchemaIssue struct {
	Table   string
	Column  string
	Message string
}

func (i SchemaIssue) String() string {
	if i.Column == "" {
		return fmt.Sprintf("%s: %s", i.Table, i.Message)
	}
	return fmt.Sprintf("%s.%s: %s", i.Table, i.Column, i.Message)
}

// VerifySchema compares every registered model with the live database and
// reports tables or columns the models expect but the database lacks.
func (s *DB) VerifySchema() ([]SchemaIssue, error) {
	log := s.log.Function("VerifySchema")

	var issues []SchemaIssue
	migrator := s.SQL.Migrator()

	for _, record := range Registry() {
		if !migrator.HasTable(record.Model) {
			issues = append(issues, SchemaIssue{Table: record.Table, Message: "table missing"})
			continue
		}

		stmt := &gorm.Statement{DB: s.SQL}
		if err := stmt.Parse(record.Model); err != nil {
			return nil, log.Err("failed to parse model", err, "table", record.Table)
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			if !migrator.HasColumn(record.Model, field.DBName) {
				issues = append(issues, SchemaIssue{
					Table:   record.Table,
					Column:  field.DBName,
					Message: "column missing",
				})
			}
		}
	}

	if len(issues) > 0 {
		log.Warn("Schema drift detected", "issues", len(issues))
	}
	return issues, nil
}
