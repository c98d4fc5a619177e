package model

// The result types below mirror the acknowledgements MongoDB returns for
// single-document writes, so clients of the original service keep working.

type InsertResult struct {
	InsertedID string
}

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    string
}

type DeleteResult struct {
	DeletedCount int64
}
