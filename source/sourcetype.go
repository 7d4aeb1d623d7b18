package source

// DataSource represents the type of data source.
type DataSource string

const (
	// CSV represents a comma-separated file on disk.
	CSV DataSource = "csv"
	// Mongo represents a MongoDB collection.
	Mongo DataSource = "mongo"
)
