// Package compile renders a project's binder content into exportable
// documents: plain text, markdown, and DOCX.
package compile

import (
	"sort"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// CompileUnit is one title-bearing chunk of the export: a folder with
// the scenes directly under it, in reading order.
type CompileUnit struct {
	Folder *domain.BinderItem // nil for top-level scenes
	Scenes []*domain.BinderItem
}

// Units walks the binder in sort order and collects the material to
// export. Folders become parts, the scenes under them become their
// content, and nested folders follow their parent. Items with
// IncludeInCompile false are skipped, as is everything under a skipped
// folder. Research items never compile.
func Units(items []*domain.BinderItem) []CompileUnit {
	children := map[string][]*domain.BinderItem{}
	for _, it := range items {
		children[it.ParentID] = append(children[it.ParentID], it)
	}
	for _, siblings := range children {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].SortOrder < siblings[j].SortOrder
		})
	}

	var units []CompileUnit

	var visit func(folder *domain.BinderItem)
	visit = func(folder *domain.BinderItem) {
		unit := CompileUnit{Folder: folder}
		var nested []*domain.BinderItem
		for _, it := range children[folder.ID] {
			if !it.IncludeInCompile || it.Type == domain.BinderResearch {
				continue
			}
			switch it.Type {
			case domain.BinderScene:
				unit.Scenes = append(unit.Scenes, it)
			case domain.BinderFolder:
				nested = append(nested, it)
			}
		}
		units = append(units, unit)
		for _, f := range nested {
			visit(f)
		}
	}

	var top CompileUnit
	var roots []*domain.BinderItem
	for _, it := range children[""] {
		if !it.IncludeInCompile || it.Type == domain.BinderResearch {
			continue
		}
		switch it.Type {
		case domain.BinderScene:
			top.Scenes = append(top.Scenes, it)
		case domain.BinderFolder:
			roots = append(roots, it)
		}
	}

	if len(top.Scenes) > 0 {
		units = append(units, top)
	}
	for _, f := range roots {
		visit(f)
	}
	return units
}
