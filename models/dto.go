package models

import "strings"

type UserForm struct {
	FirstName string `form:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" validate:"required,max=100"`
	ImageURL  string `form:"image_url" validate:"omitempty,max=2048"`
}

func (f *UserForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

// ImageURLPtr maps an empty image_url to nil so it is stored as NULL.
func (f UserForm) ImageURLPtr() *string {
	if f.ImageURL == "" {
		return nil
	}
	url := f.ImageURL
	return &url
}

func UserFormFrom(u *User) UserForm {
	form := UserForm{FirstName: u.FirstName, LastName: u.LastName}
	if u.ImageURL != nil {
		form.ImageURL = *u.ImageURL
	}
	return form
}

type PostForm struct {
	Title   string `form:"title" validate:"required,max=255"`
	Content string `form:"content" validate:"required"`
	TagIDs  []uint `form:"tag_ids"`
}

func (f *PostForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	f.TagIDs = uniqueIDs(f.TagIDs)
}

func (f PostForm) SelectedTags() map[uint]bool {
	return idSet(f.TagIDs)
}

type TagForm struct {
	Name    string `form:"name" validate:"required,max=50"`
	PostIDs []uint `form:"post_ids"`
}

func (f *TagForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.PostIDs = uniqueIDs(f.PostIDs)
}

func (f TagForm) SelectedPosts() map[uint]bool {
	return idSet(f.PostIDs)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
