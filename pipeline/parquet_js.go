//go:build js

package pipeline

import "errors"

var errParquetUnavailable = errors.New("parquet output is not available in this build; use csv")

func marshalReportsParquet([]Report) ([]byte, error) {
	return nil, errParquetUnavailable
}

func writeReportsParquet(string, []Report) error {
	return errParquetUnavailable
}
