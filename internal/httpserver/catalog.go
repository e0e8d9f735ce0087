package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"liquorhole/internal/domain"
	productrepo "liquorhole/internal/repository/product"
	"liquorhole/internal/service/suggest"
)

const maxListLimit = 500

func (h *handlers) listProducts(c *gin.Context) {
	f := productrepo.ListFilter{
		CategoryID:   c.Query("category"),
		BrandID:      c.Query("brand"),
		NameQuery:    c.Query("search"),
		DiscountOnly: c.Query("discount") == "true",
		Limit:        parseLimit(c.Query("limit")),
	}
	if c.Query("sort") == "name" {
		f.Sort = productrepo.SortNameAsc
	} else {
		f.Sort = productrepo.SortCreatedDesc
	}

	products, err := h.deps.Products.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductViews(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("get product %s: %v", c.Param("slug"), err)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductView(*p)})
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Printf("list categories: %v", err)
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *handlers) listBrands(c *gin.Context) {
	brands, err := h.deps.Brands.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Printf("list brands: %v", err)
		respondError(c, err)
		return
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *handlers) getBrand(c *gin.Context) {
	b, err := h.deps.Brands.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("get brand %s: %v", c.Param("slug"), err)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": b})
}

func (h *handlers) getMenu(c *gin.Context) {
	roots, err := h.deps.Collections.Menu(c.Request.Context())
	if err != nil {
		// degraded-but-continuing: an empty menu renders an empty nav
		h.logger.Printf("menu fetch failed, serving empty: %v", err)
		c.JSON(http.StatusOK, gin.H{"menu": []domain.MenuNode{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": roots})
}

func (h *handlers) getCollection(c *gin.Context) {
	res, err := h.deps.Collections.Resolve(c.Request.Context(), c.Param("slug"), c.Query("discount") == "true")
	if err != nil {
		h.logger.Printf("resolve collection %s: %v", c.Param("slug"), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     res.Name,
		"products": toProductViews(res.Products),
	})
}

func (h *handlers) suggestions(c *gin.Context) {
	results, err := h.deps.Suggest.Suggest(c.Request.Context(), cartSessionID(c), c.Query("q"))
	if err != nil {
		if errors.Is(err, suggest.ErrStale) {
			// superseded lookup; the client already has a newer answer
			c.JSON(http.StatusOK, gin.H{"suggestions": []suggest.Suggestion{}, "stale": true})
			return
		}
		// suggestions are non-critical: degrade to empty
		h.logger.Printf("suggestions %q: %v", c.Query("q"), err)
		c.JSON(http.StatusOK, gin.H{"suggestions": []suggest.Suggestion{}})
		return
	}
	if results == nil {
		results = []suggest.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": results})
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
