package lexicon

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Lexicon file format constants
const (
	FileMagic   = "LEX\x00"
	FileVersion = uint32(1)
	ChunkSize   = 256 // Synsets per stored chunk
)

// OneHitFlag - high bit set means value encodes a single synset number inline.
const OneHitFlag = uint64(1 << 63)

// IsOneHit checks if a value uses 1-hit encoding.
func IsOneHit(val uint64) bool {
	return (val & OneHitFlag) != 0
}

// EncodeOneHit encodes a single synset number inline.
func EncodeOneHit(num uint64) uint64 {
	return OneHitFlag | num
}

// DecodeOneHit extracts the synset number from a 1-hit encoded value.
func DecodeOneHit(val uint64) uint64 {
	return val &^ OneHitFlag
}

type Footer struct {
	SynsetsOffset uint64     `json:"synsets_offset"`
	ChunkOffsets  []uint64   `json:"chunks"`
	Languages     []LangMeta `json:"languages"`
	NumSynsets    uint64     `json:"num_synsets"`
}

// LangMeta locates the dictionary of one language. The dictionary FST maps
// DictKey(lemma, pos) to a synset number or to a bitmap offset relative to
// BitmapsOffset; the words FST maps single-word lemmas to their count.
type LangMeta struct {
	Lang          string `json:"lang"`
	BitmapsOffset uint64 `json:"bitmaps_offset"`
	BitmapsSize   uint64 `json:"bitmaps_size"`
	DictOffset    uint64 `json:"dict_offset"`
	WordsOffset   uint64 `json:"words_offset"`
	NumLemmas     uint64 `json:"num_lemmas"`
	NumWords      uint64 `json:"num_words"`
}

// DictKey is the dictionary key of a lemma key and part of speech.
func DictKey(lemmaKey string, pos POS) []byte {
	key := make([]byte, 0, len(lemmaKey)+2)
	key = append(key, lemmaKey...)
	return append(key, 0, byte(pos))
}

// EncodeBitmap serializes a synset bitmap with a 4-byte length prefix.
func EncodeBitmap(bm *roaring.Bitmap) ([]byte, error) {
	data, err := bm.ToBytes()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 4, 4+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	return append(buf, data...), nil
}

// DecodeBitmap reads a bitmap written by EncodeBitmap.
func DecodeBitmap(data []byte) (*roaring.Bitmap, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("bitmap truncated")
	}
	size := binary.BigEndian.Uint32(data)
	if uint64(len(data)) < 4+uint64(size) {
		return nil, fmt.Errorf("bitmap truncated: need %d bytes, have %d", size, len(data)-4)
	}
	bm := roaring.New()
	if err := bm.UnmarshalBinary(data[4 : 4+size]); err != nil {
		return nil, fmt.Errorf("failed to decode bitmap: %w", err)
	}
	return bm, nil
}
