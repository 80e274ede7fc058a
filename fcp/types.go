// Package fcp turns timeline entries into a Final Cut Pro XML document:
// it materializes per-image clips, resolves overlaps, quantizes to frames,
// bridges small gaps, and serializes the result.
//
// XML is generated through these structs with xml.MarshalIndent; never
// through string templates.
package fcp

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type FCPXML struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

type Resources struct {
	Formats []Format `xml:"format"`
	Assets  []Asset  `xml:"asset,omitempty"`
}

type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	FrameDuration string `xml:"frameDuration,attr,omitempty"`
	Width         string `xml:"width,attr,omitempty"`
	Height        string `xml:"height,attr,omitempty"`
}

type Asset struct {
	ID       string   `xml:"id,attr"`
	Name     string   `xml:"name,attr"`
	Start    string   `xml:"start,attr"`
	Duration string   `xml:"duration,attr"`
	HasVideo string   `xml:"hasVideo,attr"`
	MediaRep MediaRep `xml:"media-rep"`
}

type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

type Library struct {
	Events []Event `xml:"event"`
}

type Event struct {
	Name     string    `xml:"name,attr"`
	Projects []Project `xml:"project"`
}

type Project struct {
	Name      string     `xml:"name,attr"`
	Sequences []Sequence `xml:"sequence"`
}

type Sequence struct {
	Format   string `xml:"format,attr"`
	Duration string `xml:"duration,attr"`
	TCStart  string `xml:"tcStart,attr"`
	TCFormat string `xml:"tcFormat,attr"`
	Spine    Spine  `xml:"spine"`
}

// Spine is the main timeline container. Videos and gaps are kept in
// separate slices but marshal interleaved in chronological order.
type Spine struct {
	XMLName xml.Name `xml:"spine"`
	Videos  []Video  `xml:"video,omitempty"`
	Gaps    []Gap    `xml:"gap,omitempty"`
}

// MarshalXML emits spine children sorted by their frame offset so the
// document reads in timeline order regardless of slice membership.
func (s Spine) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	type elementWithOffset struct {
		offset  int
		element interface{}
	}
	elements := make([]elementWithOffset, 0, len(s.Videos)+len(s.Gaps))

	for _, video := range s.Videos {
		elements = append(elements, elementWithOffset{offsetFrames(video.Offset), video})
	}
	for _, gap := range s.Gaps {
		elements = append(elements, elementWithOffset{offsetFrames(gap.Offset), gap})
	}

	for i := 0; i < len(elements)-1; i++ {
		for j := 0; j < len(elements)-i-1; j++ {
			if elements[j].offset > elements[j+1].offset {
				elements[j], elements[j+1] = elements[j+1], elements[j]
			}
		}
	}

	for _, elem := range elements {
		if err := e.Encode(elem.element); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// offsetFrames extracts the frame numerator from a rational time like
// "72/24s" for sorting.
func offsetFrames(offset string) int {
	slash := strings.IndexByte(offset, '/')
	if slash < 0 {
		return 0
	}
	frames, err := strconv.Atoi(offset[:slash])
	if err != nil {
		return 0
	}
	return frames
}

type Video struct {
	XMLName         xml.Name         `xml:"video"`
	Ref             string           `xml:"ref,attr"`
	Offset          string           `xml:"offset,attr"`
	Name            string           `xml:"name,attr"`
	Start           string           `xml:"start,attr"`
	Duration        string           `xml:"duration,attr"`
	Enabled         string           `xml:"enabled,attr"`
	AdjustTransform *AdjustTransform `xml:"adjust-transform,omitempty"`
}

type Gap struct {
	XMLName  xml.Name `xml:"gap"`
	Name     string   `xml:"name,attr"`
	Offset   string   `xml:"offset,attr"`
	Start    string   `xml:"start,attr"`
	Duration string   `xml:"duration,attr"`
}

type AdjustTransform struct {
	Scale    string `xml:"scale,attr"`
	Position string `xml:"position,attr"`
	Anchor   string `xml:"anchor,attr"`
}
