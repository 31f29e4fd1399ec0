package surreal

import (
	"context"
	"fmt"
	"reflect"
	"regexp"

	"github.com/surrealdb/surrealdb.go"
)

type Client struct {
	db *surrealdb.DB
}

// identifierRegex ensures that table names only contain alphanumeric characters and underscores
var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateIdentifier(s string) error {
	if !identifierRegex.MatchString(s) {
		return fmt.Errorf("invalid identifier: %s", s)
	}
	return nil
}

func NewClient(host, user, pass, namespace, database string) (*Client, error) {
	db, err := surrealdb.New(host)
	if err != nil {
		return nil, fmt.Errorf("failed to create surrealdb client: %w", err)
	}

	if _, err = db.SignIn(context.Background(), map[string]interface{}{
		"user": user,
		"pass": pass,
	}); err != nil {
		return nil, fmt.Errorf("failed to signin to surrealdb: %w", err)
	}

	if err = db.Use(context.Background(), namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use surrealdb namespace/database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() {
	c.db.Close(context.Background())
}

func (c *Client) Query(sql string, vars map[string]interface{}) (interface{}, error) {
	result, err := surrealdb.Query[interface{}](context.Background(), c.db, sql, vars)
	if err != nil {
		return nil, err
	}
	return unwrapResult(result), nil
}

// SelectRecord returns the rows of table:id, usually zero or one.
func (c *Client) SelectRecord(table, id string) ([]interface{}, error) {
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT * FROM type::thing("%s", $id);`, table)
	result, err := c.Query(query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	rows, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", result)
	}
	return rows, nil
}

// UpsertRecord replaces the content of table:id.
func (c *Client) UpsertRecord(table, id string, content interface{}) error {
	if err := validateIdentifier(table); err != nil {
		return err
	}
	query := fmt.Sprintf(`UPSERT type::thing("%s", $id) CONTENT $content;`, table)
	_, err := c.Query(query, map[string]interface{}{"id": id, "content": content})
	return err
}

// unwrapResult digs the Result field out of the driver's query response,
// taking the last statement's result when there are several.
func unwrapResult(result interface{}) interface{} {
	rv := reflect.ValueOf(result)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Struct {
		resField := rv.FieldByName("Result")
		if resField.IsValid() {
			return resField.Interface()
		}
	} else if rv.Kind() == reflect.Slice {
		if rv.Len() > 0 {
			lastElem := rv.Index(rv.Len() - 1)
			if lastElem.Kind() == reflect.Struct {
				resField := lastElem.FieldByName("Result")
				if resField.IsValid() {
					return resField.Interface()
				}
			}
		}
	}

	return result
}
