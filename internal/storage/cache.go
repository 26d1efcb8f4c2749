// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/crypto"
	"github.com/lukasdietrich/sortmail/internal/log"
)

func init() {
	viper.SetDefault("storage.cache.foldername", os.TempDir())
	viper.SetDefault("storage.cache.memorylimit", "1mb")
}

// CacheOptions configure the Cache.
type CacheOptions struct {
	// Foldername is the folder for temporary files.
	Foldername string
	// MemoryLimit is the maximum size of data kept in memory.
	MemoryLimit int64
}

// CacheOptionsFromViper reads the cache options from viper.
//
// `storage.cache.foldername` is the foldername of temporary files.
// `storage.cache.memorylimit` is the maximum size of data kept in memory.
func CacheOptionsFromViper() CacheOptions {
	return CacheOptions{
		Foldername:  viper.GetString("storage.cache.foldername"),
		MemoryLimit: int64(viper.GetSizeInBytes("storage.cache.memorylimit")),
	}
}

// Cache is a temporary storage for the incoming mail. The mail has to be read more than once:
// Its header is inspected before the whole content is written to the maildir.
type Cache interface {
	// Write copies all the data from r into temporary storage.
	Write(context.Context, io.Reader) (CacheEntry, error)
}

// CacheEntry is a single blob of data kept in temporary storage.
type CacheEntry interface {
	// Reader returns a new reader to the full blob of data. Readers must not be used
	// concurrently.
	Reader() (io.Reader, error)
	// Size returns the size of the data in bytes.
	Size() int64
	// Release deletes data on disk, that may have been written.
	Release(context.Context) error
}

type cache struct {
	fs    afero.Fs
	idGen crypto.IDGenerator
	opts  CacheOptions
}

// NewCache creates a new cache. Data exceeding the memory limit is written to disk.
func NewCache(fs afero.Fs, idGen crypto.IDGenerator, opts CacheOptions) (Cache, error) {
	if err := fs.MkdirAll(opts.Foldername, 0700); err != nil {
		return nil, err
	}

	return cache{
		fs:    afero.NewBasePathFs(fs, opts.Foldername),
		idGen: idGen,
		opts:  opts,
	}, nil
}

func (c cache) Write(ctx context.Context, r io.Reader) (CacheEntry, error) {
	var memory bytes.Buffer

	n, err := io.Copy(&memory, io.LimitReader(r, c.opts.MemoryLimit))
	if err != nil {
		return nil, err
	}

	if n < c.opts.MemoryLimit {
		return memoryEntry{data: memory.Bytes()}, nil
	}

	id, err := c.idGen.GenerateID()
	if err != nil {
		return nil, err
	}

	filename := "sortmail-" + id

	file, err := c.fs.Create(filename)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx).
		Str("filename", filename).
		Int64("memoryLimit", c.opts.MemoryLimit).
		Msg("mail exceeding memory limit, evading to file")

	size, err := io.Copy(file, io.MultiReader(&memory, r))
	if err != nil {
		entry := fileEntry{fs: c.fs, filename: filename, file: file}

		if err := entry.Release(ctx); err != nil {
			log.WarnContext(ctx).
				Str("filename", filename).
				Err(err).
				Msg("could not remove partial cache file")
		}

		return nil, err
	}

	return fileEntry{fs: c.fs, filename: filename, file: file, size: size}, nil
}

type memoryEntry struct {
	data []byte
}

func (e memoryEntry) Reader() (io.Reader, error) {
	return bytes.NewReader(e.data), nil
}

func (e memoryEntry) Size() int64 {
	return int64(len(e.data))
}

func (memoryEntry) Release(context.Context) error {
	return nil
}

type fileEntry struct {
	fs       afero.Fs
	filename string
	file     afero.File
	size     int64
}

// Reader seeks the start of the file and is therefore not safe for concurrent use.
func (e fileEntry) Reader() (io.Reader, error) {
	if _, err := e.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return e.file, nil
}

func (e fileEntry) Size() int64 {
	return e.size
}

func (e fileEntry) Release(ctx context.Context) error {
	log.DebugContext(ctx).
		Str("filename", e.filename).
		Msg("removing cache file")

	if err := e.file.Close(); err != nil {
		return err
	}

	return e.fs.Remove(e.filename)
}
