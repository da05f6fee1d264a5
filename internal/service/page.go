package service

import (
	"formapi/internal/pagination"
	"formapi/internal/repository"
)

func pageQuery(req pagination.Request) repository.PageQuery {
	return repository.PageQuery{
		Limit:   req.Limit(),
		Offset:  req.Offset(),
		SortBy:  req.SortBy,
		SortDir: req.SortDir,
	}
}

func toPage[T any](res *repository.PageResult[T], req pagination.Request) *pagination.Response[T] {
	return pagination.NewResponse(res.Items, res.Total, req)
}
