package watch

import (
	"bufio"
	"io"
	"os"
)

// Reader tails session logs incrementally, remembering a byte offset per
// path so each poll returns only newly appended complete lines.
//
// The reader never fails terminally: a missing file, a permission error,
// or a short read all degrade to "no new lines this poll" and are retried
// naturally on the next one.
type Reader struct {
	offsets map[string]int64
}

func NewReader() *Reader {
	return &Reader{offsets: make(map[string]int64)}
}

// ReadNew returns the complete lines appended to path since the previous
// call, without their trailing newline. A trailing partial line is not
// consumed; its bytes are re-read on the next poll, however long it takes
// the writer to finish it.
//
// If the file shrank below the remembered offset it was truncated or
// replaced: the offset resets to zero and the whole file is returned as
// new content.
func (r *Reader) ReadNew(path string) [][]byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil
	}

	offset := r.offsets[path]
	if info.Size() < offset {
		offset = 0
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil
	}

	var lines [][]byte
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && line[len(line)-1] == '\n' {
			// Complete line: consume it and advance past its bytes.
			offset += int64(len(line))
			lines = append(lines, line[:len(line)-1])
		}
		if err != nil {
			// EOF, or a read error treated the same way: whatever was
			// consumed so far stands, the rest waits for the next poll.
			break
		}
	}

	r.offsets[path] = offset
	return lines
}

// Forget drops the remembered offset for path, typically after its
// session has been removed from the live set.
func (r *Reader) Forget(path string) {
	delete(r.offsets, path)
}

// Offset returns the number of bytes consumed from path so far.
func (r *Reader) Offset(path string) int64 {
	return r.offsets[path]
}
