package services

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteForecastCSV writes the forecast table of a result as delimited
// output with a Date,Forecast_Weekly_Sales header.
func WriteForecastCSV(w io.Writer, result *ForecastResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Forecast_Weekly_Sales"}); err != nil {
		return err
	}
	for _, p := range result.Predictions {
		row := []string{p.WeekEnding, strconv.FormatFloat(p.Forecast, 'f', 2, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
