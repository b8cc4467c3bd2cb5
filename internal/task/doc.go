// Package task implements persistent background task processing: a worker
// pool fed by an in-memory queue, backed by a tasks table for crash recovery.
package task
