// Package processor contains the command logic of subvocab. It wires the
// configuration to the subtitle reader, the caches, the translation provider
// and the interactive session, and prints the summaries of each command.
package processor
