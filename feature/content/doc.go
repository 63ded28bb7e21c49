// Package content implements a content store that keeps binary content in an
// S3 compatible bucket while exposing stream-oriented readers and writers.
//
// # Locators and Keys
//
// Content is addressed by locators such as
//
//	store://2024/1/1/10/5/6f1c...-....bin
//
// NewLocator builds them from the wall clock and a random UUID. KeyMapper
// strips the protocol and prefixes the configured root directory, so with
// root_directory=data the locator above lives at data/2024/1/1/10/5/6f1c....bin.
// Locators of any other protocol fail with ErrUnsupportedProtocol before a
// request is made. key_mode=legacy keeps using the whole locator as the key.
//
// # Reading
//
// A Reader fetches the object and its metadata once, when it is created.
// Exists, Size and LastModified never fail; OpenStream fails with
// ErrContentUnavailable when the object is absent. The remote connection is
// released by closing the stream (or the Reader); WithStream does both.
//
// # Writing
//
// A Writer stages bytes in a local file. Closing the stream runs the
// CompletionHook (UploadHook by default), which records the staged size and
// uploads the file before Close returns. Whether an upload failure is returned
// from Close or only logged is set by upload_failure_policy; Delete follows
// delete_failure_policy the same way.
//
// # HTTP Endpoints
//
//   - GET /content?url=... : Streams the content.
//   - HEAD /content?url=... : Reports size and modification time.
//   - PUT /content[?url=...] : Stores the request body; a new locator is created when url is absent.
//   - DELETE /content?url=... : Deletes the content.
//   - POST /content/locator : Returns a new locator.
package content
