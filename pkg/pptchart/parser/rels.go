package parser

import (
	"encoding/xml"
	"errors"
	"path"
	"strings"
)

// Relationship is a link declared by a part's companion .rels file.
type Relationship struct {
	ID     string
	Type   string
	Target string
	// External is set for TargetMode="External"; Target is then left as declared.
	External bool
}

// Relationships is an ordered id → Relationship mapping.
type Relationships struct {
	list []Relationship
	byID map[string]int
}

// Get returns the relationship with the given id.
func (r *Relationships) Get(id string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return Relationship{}, false
	}
	return r.list[i], true
}

// All returns relationships in declaration order.
func (r *Relationships) All() []Relationship {
	if r == nil {
		return nil
	}
	return r.list
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// ByType returns relationships of the given kind, in declaration order. kind
// is matched against the last path segment of the type URI, e.g. "chart".
func (r *Relationships) ByType(kind string) []Relationship {
	var out []Relationship
	for _, rel := range r.All() {
		if relKind(rel.Type) == kind {
			out = append(out, rel)
		}
	}
	return out
}

// RelsPathFor returns the companion relationship part of partPath,
// e.g. ppt/slides/slide1.xml → ppt/slides/_rels/slide1.xml.rels.
func RelsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}

// ownerOf returns the part a relationship file belongs to.
func ownerOf(relsPath string) string {
	dir, file := path.Split(relsPath)
	dir = strings.TrimSuffix(dir, "/")
	if path.Base(dir) == "_rels" {
		dir = path.Dir(dir)
	}
	owner := path.Join(dir, strings.TrimSuffix(file, ".rels"))
	if owner == "." {
		return ""
	}
	return strings.TrimPrefix(owner, "./")
}

// resolveRelativePath joins target against the directory of the owning part
// and cleans ".." segments. Absolute targets are package-root relative.
func resolveRelativePath(target, ownerPart string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	joined := path.Clean(path.Join(path.Dir(ownerPart), target))
	return strings.TrimPrefix(joined, "./")
}

// ResolveRelationships parses relsPath and returns its relationships with
// targets normalized against the owning part. A missing rels part yields an
// empty mapping.
func ResolveRelationships(c *Container, relsPath string) (*Relationships, error) {
	rels := &Relationships{byID: make(map[string]int)}
	data, err := c.ReadEntry(relsPath)
	if errors.Is(err, ErrEntryNotFound) {
		return rels, nil
	}
	if err != nil {
		return rels, err
	}
	return parseRelationships(data, ownerOf(relsPath)), nil
}

// ResolvePartRelationships is ResolveRelationships for the rels part of partPath.
func ResolvePartRelationships(c *Container, partPath string) (*Relationships, error) {
	return ResolveRelationships(c, RelsPathFor(partPath))
}

func parseRelationships(data []byte, ownerPart string) *Relationships {
	rels := &Relationships{byID: make(map[string]int)}
	decoder := newDecoder(data)

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		rel := Relationship{
			ID:       attr(se, "Id"),
			Type:     attr(se, "Type"),
			Target:   attr(se, "Target"),
			External: strings.EqualFold(attr(se, "TargetMode"), "External"),
		}
		if rel.ID == "" || rel.Target == "" {
			continue
		}
		if !rel.External {
			rel.Target = resolveRelativePath(rel.Target, ownerPart)
		}
		if _, dup := rels.byID[rel.ID]; dup {
			continue
		}
		rels.byID[rel.ID] = len(rels.list)
		rels.list = append(rels.list, rel)
	}

	return rels
}

// relKind returns the last path segment of a relationship type URI.
func relKind(relType string) string {
	return relType[strings.LastIndex(relType, "/")+1:]
}
