// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NoteType classifies a generated note by its topic text.
type NoteType string

const (
	NoteConcept NoteType = "concept"
	NotePerson  NoteType = "person"
	NoteEvent   NoteType = "event"
	NoteProject NoteType = "project"
)
