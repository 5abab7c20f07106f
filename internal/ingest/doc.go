// Package ingest reads delimited student records into a roster.
//
// Each data row carries seven fields:
//
//	institute, name, roll, branch, starting_year, current_courses, past_courses
//
// The institute tag ("IIIT" or "IIT") selects the record variant. Current
// courses are a list joined by the list separator; past courses are a list of
// course:grade pairs.
//
// Problems are handled at the narrowest scope that contains them. A bad
// course or grade entry is dropped and the row kept. A bad row (wrong field
// count, unknown institute, unparsable year, non-numeric IIT roll) is dropped
// and the load continues. Only a source that cannot be opened or read fails
// the load as a whole.
package ingest
