// Package store persists entities in SQL tables through the ent dialect
// builder. A Table describes how one entity maps to its columns; SQLStore
// implements get, save, update, list and page over it.
package store
