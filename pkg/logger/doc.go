// Package logger builds the structured slog logger shared by the web app.
// Production runs emit JSON, development and staging emit text, and every
// record carries the environment it was produced in.
package logger
