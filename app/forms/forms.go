// Package forms parses and validates the application's form
// submissions. Validation runs before any store mutation; a failed form
// is redisplayed with its field errors.
package forms

import "net/http"

const minPasswordLen = 8

// Errors maps a field name to its validation message.
type Errors map[string]string

type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Errors   Errors
}

func ParseRegister(r *http.Request) *RegisterForm {
	return &RegisterForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Errors:   Errors{},
	}
}

func (f *RegisterForm) Validate() bool {
	if !required(f.Name) {
		f.Errors["name"] = "Name is required."
	}
	if !required(f.Email) {
		f.Errors["email"] = "Email is required."
	} else if !validEmail(f.Email) {
		f.Errors["email"] = "Enter a valid email address."
	}
	if !required(f.Password) {
		f.Errors["password"] = "Password is required."
	} else if !minLen(f.Password, minPasswordLen) {
		f.Errors["password"] = "Password must be at least 8 characters."
	}
	return len(f.Errors) == 0
}

type LoginForm struct {
	Email    string
	Password string
	Errors   Errors
}

func ParseLogin(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	if !required(f.Email) {
		f.Errors["email"] = "Email is required."
	} else if !validEmail(f.Email) {
		f.Errors["email"] = "Enter a valid email address."
	}
	if !required(f.Password) {
		f.Errors["password"] = "Password is required."
	}
	return len(f.Errors) == 0
}

type PostForm struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
	Errors   Errors
}

func ParsePost(r *http.Request) *PostForm {
	return &PostForm{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		ImgURL:   r.PostFormValue("img_url"),
		Body:     r.PostFormValue("body"),
		Errors:   Errors{},
	}
}

func (f *PostForm) Validate() bool {
	if !required(f.Title) {
		f.Errors["title"] = "Title is required."
	}
	if !required(f.Subtitle) {
		f.Errors["subtitle"] = "Subtitle is required."
	}
	if !required(f.ImgURL) {
		f.Errors["img_url"] = "Image URL is required."
	} else if !validURL(f.ImgURL) {
		f.Errors["img_url"] = "Enter a valid URL."
	}
	if !required(f.Body) {
		f.Errors["body"] = "Body is required."
	}
	return len(f.Errors) == 0
}

type CommentForm struct {
	Body   string
	Errors Errors
}

func ParseComment(r *http.Request) *CommentForm {
	return &CommentForm{Body: r.PostFormValue("body"), Errors: Errors{}}
}

func (f *CommentForm) Validate() bool {
	if !required(f.Body) {
		f.Errors["body"] = "Comment text is required."
	}
	return len(f.Errors) == 0
}

type ContactForm struct {
	Name    string
	Email   string
	Number  string
	Message string
	Errors  Errors
}

func ParseContact(r *http.Request) *ContactForm {
	return &ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Number:  r.PostFormValue("number"),
		Message: r.PostFormValue("message"),
		Errors:  Errors{},
	}
}

func (f *ContactForm) Validate() bool {
	if !required(f.Name) {
		f.Errors["name"] = "Name is required."
	}
	if !required(f.Email) {
		f.Errors["email"] = "Email is required."
	} else if !validEmail(f.Email) {
		f.Errors["email"] = "Enter a valid email address."
	}
	if !required(f.Message) {
		f.Errors["message"] = "Message is required."
	}
	return len(f.Errors) == 0
}
