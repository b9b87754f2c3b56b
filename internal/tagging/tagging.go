// Package tagging writes metadata tags and embedded artwork into
// downloaded audio files.
package tagging

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/calvez/qbzgrab/internal/constants"
)

// Apply writes the tag map into the audio file at path, in place. The
// format decides the container handling; unknown formats are left
// untouched. embedPath, when non-empty, names an image file embedded as
// the front cover.
func Apply(format, path string, t map[string]string, embedPath string) error {
	var art []byte
	if embedPath != "" {
		data, err := os.ReadFile(embedPath)
		if err != nil {
			return fmt.Errorf("failed to read cover image: %w", err)
		}
		art = data
	}

	switch format {
	case constants.FormatFLAC:
		return applyFLAC(path, t, art)
	case constants.FormatMP3:
		return applyMP3(path, t, art)
	default:
		return nil
	}
}

// applyFLAC replaces the Vorbis comment and picture blocks of a FLAC
// file with the given tag set.
func applyFLAC(path string, t map[string]string, art []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	comment := flacvorbis.New()
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := comment.Add(k, t[k]); err != nil {
			return fmt.Errorf("failed to add %s comment: %w", k, err)
		}
	}
	commentBlock := comment.Marshal()
	f.Meta = append(f.Meta, &commentBlock)

	if len(art) > 0 {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			art,
			detectMIME(art),
		)
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		pictureBlock := picture.Marshal()
		f.Meta = append(f.Meta, &pictureBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// applyMP3 writes the tag set as ID3v2.4 frames.
func applyMP3(path string, t map[string]string, art []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)

	if v := t["TITLE"]; v != "" {
		tag.SetTitle(v)
	}
	if v := t["ARTIST"]; v != "" {
		tag.SetArtist(v)
	}
	if v := t["ALBUM"]; v != "" {
		tag.SetAlbum(v)
	}
	if v := t["ALBUMARTIST"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), tag.DefaultEncoding(), v)
	}
	if v := t["GENRE"]; v != "" {
		tag.SetGenre(v)
	}
	if v := t["YEAR"]; v != "" {
		tag.SetYear(v)
	}
	if v := t["DATE"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Release time"), tag.DefaultEncoding(), v)
	}
	if v := t["COMPOSER"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Composer"), tag.DefaultEncoding(), v)
	}
	if v := t["COPYRIGHT"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Copyright message"), tag.DefaultEncoding(), v)
	}
	if v := t["LABEL"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Publisher"), tag.DefaultEncoding(), v)
	}
	if v := t["ISRC"]; v != "" {
		tag.AddTextFrame(tag.CommonID("ISRC"), tag.DefaultEncoding(), v)
	}
	if v := t["MEDIATYPE"]; v != "" {
		tag.AddTextFrame(tag.CommonID("Media type"), tag.DefaultEncoding(), v)
	}
	if v := t["TRACKNUMBER"]; v != "" {
		if total := t["TRACKTOTAL"]; total != "" {
			v = v + "/" + total
		}
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), v)
	}
	if v := t["DISCNUMBER"]; v != "" {
		if total := t["DISCTOTAL"]; total != "" {
			v = v + "/" + total
		}
		tag.AddTextFrame(tag.CommonID("Part of a set"), tag.DefaultEncoding(), v)
	}
	for _, desc := range []string{"BARCODE", "ITUNESADVISORY"} {
		if v := t[desc]; v != "" {
			tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
				Encoding:    id3v2.EncodingUTF8,
				Description: desc,
				Value:       v,
			})
		}
	}

	if len(art) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectMIME(art),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     art,
		})
	}

	return tag.Save()
}

// detectMIME sniffs the image content type so PNG covers are not
// labelled as image/jpeg.
func detectMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	return mime
}
