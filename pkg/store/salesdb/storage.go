package salesdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ProductDimSchema = `
	CREATE TABLE IF NOT EXISTS dim_product (
		product_id INTEGER PRIMARY KEY,
		product_name VARCHAR NOT NULL,
		category VARCHAR,
		brand VARCHAR
	);
`

const CustomerDimSchema = `
	CREATE TABLE IF NOT EXISTS dim_customer (
		customer_id INTEGER PRIMARY KEY,
		customer_name VARCHAR NOT NULL,
		gender VARCHAR,
		age INTEGER,
		loyalty_level VARCHAR
	);
`

const StaffDimSchema = `
	CREATE TABLE IF NOT EXISTS dim_staff (
		staff_id INTEGER PRIMARY KEY,
		staff_name VARCHAR NOT NULL,
		title VARCHAR,
		hire_date DATE
	);
`

const RegionDimSchema = `
	CREATE TABLE IF NOT EXISTS dim_region (
		region_id INTEGER PRIMARY KEY,
		region_name VARCHAR NOT NULL,
		country VARCHAR,
		city VARCHAR
	);
`

const TimeDimSchema = `
	CREATE TABLE IF NOT EXISTS dim_time (
		time_id INTEGER PRIMARY KEY,
		date DATE NOT NULL,
		month INTEGER,
		quarter INTEGER,
		year INTEGER
	);
`

const SalesFactSchema = `
	CREATE TABLE IF NOT EXISTS sales_fact (
		sale_id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL,
		customer_id INTEGER NOT NULL,
		staff_id INTEGER NOT NULL,
		region_id INTEGER NOT NULL,
		time_id INTEGER NOT NULL,
		quantity INTEGER,
		amount DOUBLE
	);
`

var bootQueries = []string{
	ProductDimSchema,
	CustomerDimSchema,
	StaffDimSchema,
	RegionDimSchema,
	TimeDimSchema,
	SalesFactSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
