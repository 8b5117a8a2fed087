package service

import "time"

const (
	// Sentinels reported instead of dividing by zero.
	RatioSentinel          = 999.0
	BufferMonthsSentinel   = 12.0
	SurvivalMonthsSentinel = 999

	// Minimum share of total expenses for a category to count as pressure.
	MinPressureShare   = 0.05
	MaxPressureSources = 2

	ExpenseRatioPlaces = 3
	DebtRatioPlaces    = 3
	BufferMonthsPlaces = 2
	BalancePlaces      = 2

	MinConfidence = 0
	MaxConfidence = 100

	DefaultLLMTimeout = 10 * time.Second
	// Cap on the response body read from the text-generation service.
	MaxLLMResponseBytes = 1 << 20

	// Limits applied to explain requests at the transport boundary.
	MaxFactKeys = 64
)
