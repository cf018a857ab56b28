// Package firestore provides the Google Cloud Firestore implementation of the
// store.TaskStore interface. Tasks live in a single collection; the document
// key is the task identifier and each document holds the title and a
// server-assigned creation timestamp.
package firestore
