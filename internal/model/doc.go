package model

// Package model defines domain data structures used across the app: mod
// records, update plans, apply results, and status enums. Structures carry
// everything a presenter needs for review dialogs and summary reports.
