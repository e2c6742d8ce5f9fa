package planner

// Package planner implements the scan/apply engine at the heart of the tool.
// A scan walks the immediate subdirectories of a mods folder, classifies each
// one against its meta.ini, and produces a reviewable update plan; apply then
// persists newestVersion into version for the records the caller selected,
// treating every file write as its own unit of failure.
