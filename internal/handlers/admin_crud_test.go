// admin_crud_test.go exercises the schema-driven admin handlers against a
// real database. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"thememarket/internal/schema"
	"thememarket/internal/store"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminIndexAndList(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("admin")

	rec := httptest.NewRecorder()
	env.Admin.Index(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/", nil), sess))
	if rec.Code != http.StatusOK {
		t.Fatalf("index status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Site-Wide Settings") {
		t.Error("index should list the navigation groups")
	}

	for _, model := range []string{"theme", "category", "sitesettings", "footersection", "cartpagecontent"} {
		rec := httptest.NewRecorder()
		req := withParams(httptest.NewRequest(http.MethodGet, "/admin/"+model+"/", nil), sess, "model", model)
		env.Admin.List(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("list %s: status %d", model, rec.Code)
		}
	}
}

func TestAdminUnknownModel(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	req := withParams(httptest.NewRequest(http.MethodGet, "/admin/nope/", nil), testSession("admin"), "model", "nope")
	env.Admin.List(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAdminCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("admin")
	ctx := context.Background()
	cat := schema.Default.MustGet("Category")
	const slug = "handler-test-category"
	t.Cleanup(func() { cleanBySlug(t, env.DB, "categories", slug) })
	cleanBySlug(t, env.DB, "categories", slug)

	// Create with the slug prepopulated from the name.
	form := url.Values{"name": {"Handler Test Category"}, "icon_class": {"fas fa-flask"}}
	rec := httptest.NewRecorder()
	env.Admin.Create(rec, withParams(postForm("/admin/category/add/", form), sess, "model", "category"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/category/" {
		t.Errorf("Location: got %q", loc)
	}
	id, found, err := env.Records.LookupID(ctx, cat, "slug", slug)
	if err != nil || !found {
		t.Fatalf("created category not found: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	// A duplicate slug is a conflict naming the field.
	form.Set("slug", slug)
	rec = httptest.NewRecorder()
	env.Admin.Create(rec, withParams(postForm("/admin/category/add/", form), sess, "model", "category"))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status: got %d, want %d", rec.Code, http.StatusConflict)
	}
	if !strings.Contains(rec.Body.String(), "Category with this Slug already exists.") {
		t.Error("duplicate error should name the slug field")
	}

	// Missing required fields re-render the form.
	rec = httptest.NewRecorder()
	env.Admin.Update(rec, withParams(postForm("/admin/category/"+idStr+"/", url.Values{"name": {""}, "slug": {slug}}), sess, "model", "category", "id", idStr))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid update status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "This field is required.") {
		t.Error("form should show the field error")
	}

	// Save and continue returns to the edit form.
	form = url.Values{"name": {"Renamed Category"}, "slug": {slug}, "icon_class": {"fas fa-flask"}, "_continue": {"1"}}
	rec = httptest.NewRecorder()
	env.Admin.Update(rec, withParams(postForm("/admin/category/"+idStr+"/", form), sess, "model", "category", "id", idStr))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status: got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/category/"+idStr+"/" {
		t.Errorf("Location: got %q", loc)
	}

	rec = httptest.NewRecorder()
	env.Admin.Edit(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/category/"+idStr+"/", nil), sess, "model", "category", "id", idStr))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Renamed Category") {
		t.Errorf("edit: status %d, renamed value missing", rec.Code)
	}

	// List-editable save: valid values are written, invalid ones rejected.
	rec = httptest.NewRecorder()
	env.Admin.SaveList(rec, withParams(postForm("/admin/category/inline/", url.Values{
		"ids": {idStr}, idStr + "-sort_order": {"7"}, idStr + "-is_featured": {"false", "true"},
	}), sess, "model", "category"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("save list status: got %d", rec.Code)
	}
	row, err := env.Records.Get(ctx, cat, id)
	if err != nil || row == nil {
		t.Fatalf("get: %v", err)
	}
	if row["sort_order"] != int64(7) || row["is_featured"] != true {
		t.Errorf("list save not applied: sort_order=%v is_featured=%v", row["sort_order"], row["is_featured"])
	}
	if n := len(sess.Flashes); n == 0 || sess.Flashes[n-1].Message != "1 Category was changed successfully." {
		t.Errorf("flashes = %+v, want the singular change message", sess.Flashes)
	}

	rec = httptest.NewRecorder()
	env.Admin.SaveList(rec, withParams(postForm("/admin/category/inline/", url.Values{
		"ids": {idStr}, idStr + "-sort_order": {"seven"},
	}), sess, "model", "category"))
	row, _ = env.Records.Get(ctx, cat, id)
	if row["sort_order"] != int64(7) {
		t.Errorf("invalid list save changed sort_order to %v", row["sort_order"])
	}

	// Delete.
	rec = httptest.NewRecorder()
	env.Admin.Delete(rec, withParams(httptest.NewRequest(http.MethodPost, "/admin/category/"+idStr+"/delete/", nil), sess, "model", "category", "id", idStr))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status: got %d", rec.Code)
	}
	if row, _ := env.Records.Get(ctx, cat, id); row != nil {
		t.Error("category should be gone")
	}

	rec = httptest.NewRecorder()
	env.Admin.Edit(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/category/"+idStr+"/", nil), sess, "model", "category", "id", idStr))
	if rec.Code != http.StatusNotFound {
		t.Errorf("edit deleted: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAdminInlineChildren(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("admin")
	ctx := context.Background()
	links := schema.Default.MustGet("FooterLink")
	const title = "Handler Test Footer"
	cleanup := func() { env.DB.Exec("DELETE FROM footer_sections WHERE title = $1", title) }
	t.Cleanup(cleanup)
	cleanup()

	form := url.Values{
		"title":              {title},
		"sort_order":         {"9"},
		"FooterLink-TOTAL":   {"2"},
		"FooterLink-0-title": {"Docs"},
		"FooterLink-0-url":   {"/pages/docs/"},
		"FooterLink-1-title": {""},
	}
	rec := httptest.NewRecorder()
	env.Admin.Create(rec, withParams(postForm("/admin/footersection/add/", form), sess, "model", "footersection"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d", rec.Code)
	}

	var id int64
	if err := env.DB.Get(&id, "SELECT id FROM footer_sections WHERE title = $1", title); err != nil {
		t.Fatalf("find section: %v", err)
	}
	kids, err := env.Records.Children(ctx, links, id)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 1 || kids[0]["title"] != "Docs" {
		t.Fatalf("children = %v, want the one filled row", kids)
	}

	// Replacing with a deleted row removes the child.
	idStr := strconv.FormatInt(id, 10)
	form = url.Values{
		"title":               {title},
		"sort_order":          {"9"},
		"FooterLink-TOTAL":    {"1"},
		"FooterLink-0-title":  {"Docs"},
		"FooterLink-0-url":    {"/pages/docs/"},
		"FooterLink-0-DELETE": {"true"},
	}
	rec = httptest.NewRecorder()
	env.Admin.Update(rec, withParams(postForm("/admin/footersection/"+idStr+"/", form), sess, "model", "footersection", "id", idStr))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status: got %d", rec.Code)
	}
	if kids, _ := env.Records.Children(ctx, links, id); len(kids) != 0 {
		t.Errorf("children after delete = %d, want 0", len(kids))
	}

	rec = httptest.NewRecorder()
	env.Admin.Edit(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/footersection/"+idStr+"/", nil), sess, "model", "footersection", "id", idStr))
	if !strings.Contains(rec.Body.String(), `name="FooterLink-TOTAL"`) {
		t.Error("edit form should carry the inline management field")
	}
}

func TestAdminInlineUpdateKeepsChildren(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("admin")
	ctx := context.Background()
	team := schema.Default.MustGet("AboutTeam")
	members := schema.Default.MustGet("TeamMember")
	const title = "Handler Test Team"
	cleanup := func() { env.DB.Exec("DELETE FROM about_teams WHERE title = $1", title) }
	t.Cleanup(cleanup)
	cleanup()

	id, err := env.Records.Create(ctx, team, schema.Values{"title": title, "subtitle": "The people", "is_active": false},
		map[string][]schema.Values{"TeamMember": {{
			"name": "Ana", "position": "CTO", "photo": "https://img.example.com/ana.jpg",
			"linkedin_url": "https://linkedin.com/in/ana", "twitter_url": "https://x.com/ana", "sort_order": int64(0),
		}}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	kids, _ := env.Records.Children(ctx, members, id)
	if len(kids) != 1 {
		t.Fatalf("children = %d, want 1", len(kids))
	}
	memberID := strconv.FormatInt(kids[0].ID(), 10)
	idStr := strconv.FormatInt(id, 10)

	rec := httptest.NewRecorder()
	env.Admin.Edit(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/aboutteam/"+idStr+"/", nil), sess, "model", "aboutteam", "id", idStr))
	if want := `name="TeamMember-0-id" value="` + memberID + `"`; !strings.Contains(rec.Body.String(), want) {
		t.Errorf("edit form should carry %s", want)
	}

	// Save the form as rendered: the inline only lists some member columns.
	form := url.Values{
		"title":                   {title},
		"subtitle":                {"The people"},
		"TeamMember-TOTAL":        {"2"},
		"TeamMember-0-id":         {memberID},
		"TeamMember-0-name":       {"Ana Maria"},
		"TeamMember-0-position":   {"CTO"},
		"TeamMember-0-photo":      {"https://img.example.com/ana.jpg"},
		"TeamMember-0-sort_order": {"0"},
		"TeamMember-1-name":       {""},
	}
	rec = httptest.NewRecorder()
	env.Admin.Update(rec, withParams(postForm("/admin/aboutteam/"+idStr+"/", form), sess, "model", "aboutteam", "id", idStr))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status: got %d", rec.Code)
	}

	kids, _ = env.Records.Children(ctx, members, id)
	if len(kids) != 1 {
		t.Fatalf("children after save = %d, want 1", len(kids))
	}
	got := kids[0]
	if strconv.FormatInt(got.ID(), 10) != memberID {
		t.Errorf("member id = %d, want %s", got.ID(), memberID)
	}
	if got["name"] != "Ana Maria" {
		t.Errorf("name = %v, want Ana Maria", got["name"])
	}
	if got["linkedin_url"] != "https://linkedin.com/in/ana" || got["twitter_url"] != "https://x.com/ana" {
		t.Errorf("social links lost on save: %v / %v", got["linkedin_url"], got["twitter_url"])
	}
}

func TestAdminSingletonGuards(t *testing.T) {
	env := newTestEnv(t)
	sess := testSession("admin")
	ctx := context.Background()
	settings := schema.Default.MustGet("SiteSettings")

	n, err := env.Records.Count(ctx, settings)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n == 0 {
		rec := httptest.NewRecorder()
		env.Admin.Create(rec, withParams(postForm("/admin/sitesettings/add/", url.Values{}), sess, "model", "sitesettings"))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("create first settings row: status %d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	env.Admin.Add(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/sitesettings/add/", nil), sess, "model", "sitesettings"))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("second add form: got %d, want redirect", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.Admin.Create(rec, withParams(postForm("/admin/sitesettings/add/", url.Values{}), sess, "model", "sitesettings"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("second create: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	rows, err := env.Records.List(ctx, settings, store.ListQuery{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("settings rows = %d, err %v", len(rows), err)
	}
	idStr := strconv.FormatInt(rows[0].ID(), 10)
	rec = httptest.NewRecorder()
	env.Admin.Delete(rec, withParams(httptest.NewRequest(http.MethodPost, "/admin/sitesettings/"+idStr+"/delete/", nil), sess, "model", "sitesettings", "id", idStr))
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete singleton: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAdminExport(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Export(rec, withParams(httptest.NewRequest(http.MethodGet, "/admin/theme/export.xlsx", nil), testSession("editor"), "model", "theme"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "themes.xlsx") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook")
	}
}
