// Package archive uploads run artifacts to S3-compatible object storage.
//
// After a successful run the pipeline can push the dataset snapshot and
// the spreadsheet export under runs/<date>/<run-id>/, giving every run a
// durable, browsable trail beyond the single mutable dataset file. The
// feature is optional: with no endpoint configured the archiver is nil and
// the pipeline skips it.
//
// # Client Interface
//
// The Client interface wraps the subset of the MinIO client the archiver
// needs, so storage interactions can be mocked in unit tests (see
// core/archive/mocks). It supports both AWS S3 and self-hosted MinIO.
package archive
