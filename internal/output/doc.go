// Package output serializes filtered host documents, writes them to their
// destination and validates them.
//
//   - Serialization (serializer.go): JSON or YAML, chosen explicitly or from
//     the output file extension. JSON keeps the two-space layout of app.json
//     and does not escape HTML characters.
//
//   - Writers (writer.go): the [Writer] interface with [StdoutWriter] and an
//     atomically replacing [FileWriter].
//
//   - Validation (validator.go): [ValidateManifest] reports manifests the
//     filter would pass through untouched and rules that select nothing.
package output
