// Command cratesync exports rekordbox playlists and their audio files to a
// USB volume, writing M3U8 manifests with relative paths.
package main
