package config

const (
	// TopicDocumentProcessed is the NSQ topic announcing that a document
	// finished ingestion and its chunks are searchable.
	TopicDocumentProcessed = "document.processed"
)
