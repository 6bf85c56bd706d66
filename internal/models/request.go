package models

// ForecastRequest is the JSON body accepted by POST forecast endpoints.
// All fields are optional; absent fields fall back to config defaults.
// Horizon and SeasonalPeriods are pointers so an explicit 0 is passed
// through for validation rather than treated as unset.
type ForecastRequest struct {
	Horizon         *int     `json:"horizon,omitempty"`
	SeasonalPeriods *int     `json:"seasonal_periods,omitempty"`
	Mode            string   `json:"mode"`
	Damped          bool     `json:"damped"`
	Alpha           *float64 `json:"alpha,omitempty"`
	Beta            *float64 `json:"beta,omitempty"`
	Gamma           *float64 `json:"gamma,omitempty"`
	Phi             *float64 `json:"phi,omitempty"`
}
