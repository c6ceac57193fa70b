package composer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

var genericHashtags = []string{"#Review", "#Unboxing", "#Tech", "#NewRelease", "#리뷰", "#언박싱", "#신제품", "#추천"}

// Fallback builds deterministic content from the product name and keywords.
// It is served when the completion service is missing or failed.
func Fallback(req *entity.GenerateRequest) entity.GenerateResponse {
	product := strings.TrimSpace(req.ProductName)

	var desc strings.Builder
	fmt.Fprintf(&desc, "Discover the %s in this video.", product)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&desc, " We take a close look at %s and show how each one works in everyday use.", joinWords(req.Keywords))
	} else {
		desc.WriteString(" We walk through its design, key features and everyday performance.")
	}
	if len(req.BriefUSPs) > 0 {
		fmt.Fprintf(&desc, " Highlights include %s.", joinWords(req.BriefUSPs))
	}
	fmt.Fprintf(&desc, " Watch to the end for practical tips and answers to the most common questions about the %s.", product)

	return entity.GenerateResponse{
		Description: desc.String(),
		Timestamps:  "0:00 Introduction\n0:30 Design overview\n1:30 Key features\n3:00 Everyday use\n4:30 Final thoughts",
		Hashtags:    fallbackHashtags(product, req.Keywords),
		FAQ:         fallbackFAQ(product, req.Keywords),
	}
}

func fallbackHashtags(product string, keywords []string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		key := strings.ToLower(tag)
		if tag == "#" || seen[key] {
			return
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	add("#" + Hashtag(product))
	for _, kw := range keywords {
		add("#" + Hashtag(kw))
	}
	for _, tag := range genericHashtags {
		add(tag)
	}
	return tags
}

func fallbackFAQ(product string, keywords []string) string {
	pairs := []string{
		fmt.Sprintf("Q: What is the %s?\nA: The %s is featured in this video with a full walkthrough of its key features.", product, product),
		fmt.Sprintf("Q: Who is the %s for?\nA: Anyone looking for reliable everyday performance and a polished design.", product),
	}
	if len(keywords) > 0 {
		pairs = append(pairs, fmt.Sprintf("Q: How does the %s handle %s?\nA: The video shows %s in real-world use so you can judge for yourself.", product, keywords[0], keywords[0]))
	}
	pairs = append(pairs, fmt.Sprintf("Q: Where can I find full specifications for the %s?\nA: Visit the official product page for detailed specifications and availability.", product))
	return strings.Join(pairs, "\n\n")
}

// Hashtag strips everything but letters and digits from s.
func Hashtag(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}
