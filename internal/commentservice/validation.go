package commentservice

import "github.com/sushihentaime/quillpad/internal/common"

func validateBlogID(v *common.Validator, blogID string) {
	v.Check(v.NotBlank(blogID), "blogId", "must be provided")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(v.NotBlank(author), "author", "must be provided")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
}
