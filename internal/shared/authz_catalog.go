package shared

// Catalog module keys.
const (
	ModuleCategoryTypes = "category_types"
	ModuleCategories    = "categories"
	ModuleSkills        = "skills"
	ModuleSections      = "sections"
	ModuleProjects      = "projects"
	ModulePortfolios    = "portfolios"
	ModuleMedia         = "media"
)

// Catalog permissions follow the OPERATION_MODULE convention; the per-module
// constants that appear in handlers are spelled out here so grep finds them.
const (
	PermViewCategoryTypes   = "VIEW_CATEGORY_TYPES"
	PermManageCategoryTypes = "MANAGE_CATEGORY_TYPES"

	PermViewCategories   = "VIEW_CATEGORIES"
	PermManageCategories = "MANAGE_CATEGORIES"

	PermViewSkills   = "VIEW_SKILLS"
	PermManageSkills = "MANAGE_SKILLS"

	PermViewSections   = "VIEW_SECTIONS"
	PermManageSections = "MANAGE_SECTIONS"

	PermViewProjects   = "VIEW_PROJECTS"
	PermEditProjects   = "EDIT_PROJECTS"
	PermDeleteProjects = "DELETE_PROJECTS"
	PermManageProjects = "MANAGE_PROJECTS"

	PermViewPortfolios   = "VIEW_PORTFOLIOS"
	PermManagePortfolios = "MANAGE_PORTFOLIOS"

	PermViewMedia   = "VIEW_MEDIA"
	PermManageMedia = "MANAGE_MEDIA"
)
