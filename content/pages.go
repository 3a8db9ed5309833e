package content

// HomeSlug is the page-hero slug that maps to the site root.
const HomeSlug = "accueil"

// pageRoutes declares which public pages embed each entity type. It is the
// single reviewable table behind cache invalidation: a write to an entity
// marks every listed page stale, across every locale.
var pageRoutes = map[Type][]string{
	TypeHero:         {"/"},
	TypeAbout:        {"/"},
	TypeFeature:      {"/"},
	TypeRoom:         {"/", "/chambres"},
	TypeTestimonial:  {"/"},
	TypeGalleryImage: {"/", "/galerie"},
	TypeEvent:        {"/evenements"},
	TypeGiftCard:     {"/bons-cadeaux"},
	TypeSeminar:      {"/seminaires"},
}

// AffectedPages returns the logical public pages whose rendered output
// depends on an entity of the given type. Page heroes affect exactly the
// page named by their slug.
func AffectedPages(t Type, slug string) []string {
	if t == TypePageHero {
		if slug == HomeSlug {
			return []string{"/"}
		}
		return []string{"/" + slug}
	}
	routes := pageRoutes[t]
	out := make([]string, len(routes))
	copy(out, routes)
	return out
}
