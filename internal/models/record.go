package models

import "time"

// DailyRecord is one cleaned observation day for the target city. The series
// is built once per run (ingest, clean, label) and read-only afterwards.
type DailyRecord struct {
	Date   time.Time    `json:"date"`
	PM25   float64      `json:"pm25"`
	NO2    float64      `json:"no2"`
	Status PolicyStatus `json:"policy_status"`
}

// Advisory is a notable item from an air quality advisory feed, listed in
// the rendered report for context.
type Advisory struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Published time.Time `json:"published"`
}
